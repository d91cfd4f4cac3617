// Package ui is the Bubble Tea front end for citadel.
//
// The model never fetches list pages itself. It subscribes to a list.Store,
// renders whatever snapshot arrives last, and turns key presses into
// intents:
//
//   - "/" focuses the search input; every edit dispatches list.Search and esc
//     dispatches list.ClearSearch.
//   - Moving the selection within three rows of the end dispatches
//     list.LoadNextPage when the snapshot allows it.
//   - "r" dispatches list.LoadInitial after a failed first load and
//     list.RetryLastPage after a failed page.
//
// The detail view is the one place the model talks to the API directly: it
// fetches character/{id} for the fields the list does not carry and falls
// back to the list record when that request fails.
//
// Selection is tracked by character ID so appends, server search results and
// mode switches do not make the cursor jump.
package ui
