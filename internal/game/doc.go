/*
Package game owns the lifecycle of loaded mini-games.

Loading a game runs the static analyzer and the enhancement injector once,
wholesale; there is no incremental re-analysis. Each session carries its
diagnostics, the compressed original and enhanced documents, and a
protocol bridge whose score state persists across re-loads of the
byte-identical game (sessions are keyed by a content hash).

The Library seeder and the Fetcher are the two non-API entry points for
game markup: a local directory of prebuilt games and a remote URL.
*/
package game
