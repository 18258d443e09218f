// Package marketsim implements the engine of a single-player market
// simulation.
//
// The engine has two parts:
//   - Price Process: a set of instruments whose prices follow a multiplicative
//     random walk, advanced one day at a time by Market.AdvanceAll.
//   - Portfolio Ledger: the player's cash and holdings. Buy and Sell validate
//     every trade against the live instrument price and apply it atomically:
//     cash never goes negative and a fully sold holding disappears.
//
// The only source of nondeterminism is the Source passed to NewMarket, so a
// session can be replayed exactly from a seed, or pinned in tests with Sequence.
//
// Nothing is persisted: a Market lives for one session and is discarded.
package marketsim
