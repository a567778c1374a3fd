// Package dhub contains the delivery engine behind the proxies
// in the root dproxy package.
//
// A [Channel] is the per-subscription state:
// a queue of pending values, the subscriber's outstanding demand,
// and a non-blocking drain guard.
// A [Hub] owns the set of live channels for one proxy and fans values out to them.
// A [CachingHub] adds a last-value cell that seeds new channels.
package dhub
