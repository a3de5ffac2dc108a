// Package deck implements bulk management of card image assets.
//
// Cards are SVG or PNG objects stored as <deck title>/<card name>.<ext> in
// the bucket root. A deck is nothing but the set of card keys sharing a title
// prefix; it has no stored record and is derived from key enumeration at read
// time.
//
// Uploads run concurrently after the whole batch has been validated; a
// storage failure mid-batch leaves already-written objects in place. Deletes
// enumerate the matching card keys, partition them into batches of at most
// storage.MaxBatchDelete keys, and issue the batch deletes concurrently.
// Batches are not transactional with each other: a failing batch is reported
// with the completed/attempted counts and completed batches stay deleted.
//
// # HTTP Endpoints
//
//   - GET    /decks         : List every deck with its cards.
//   - GET    /decks/:title  : List one deck's raw card keys.
//   - POST   /decks/:title  : Upload a batch of cards.
//   - DELETE /decks/:title  : Delete one deck, reporting the key count.
//   - DELETE /decks         : Delete every card image in the bucket.
package deck
