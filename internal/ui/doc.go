// Package ui is cinedeck's Bubble Tea interface.
//
// The root Model reads everything it draws from state.Store snapshots and
// changes state only through the store's slices, from tea.Cmds so the event
// loop never blocks on the network or storage. Screens:
//
//   - Loading: shown until the store's bootstrap has finished
//   - Login / Register: the forms that replace everything while logged out
//   - Main: Home, Favourites, Songs, Podcasts, Profile and Logs tabs
//   - Details: one movie with its poster, opened from Home or Favourites
//
// Colours follow the theme slice; switching the mode on the Profile tab
// re-styles every view on the next snapshot.
package ui
