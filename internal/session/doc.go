// Package session is the access layer for quiz sessions stored in MongoDB.
//
// A session is created when a quiz starts, receives its scores when the quiz
// is finished and gets an owner email when results are sent by mail. Emails
// are never stored in plaintext: the document holds a salted bcrypt hash and
// a keyed HMAC index used for lookups.
//
//	hasher, _ := session.NewEmailHasher(cfg.EmailIndexKey, cfg.EmailHashCost)
//	store := session.NewStore(db, quiz.NewStore(db), hasher)
//
//	s, err := store.Create(ctx, session.CreateParams{Version: 1})
//	score := 85.0
//	s, err = store.Update(ctx, s.ID.Hex(), session.Patch{GlobalScore: &score})
//	if errors.Is(err, session.ErrNotFound) {
//		// unknown or malformed id
//	}
//
// Category scores reference quiz categories by id and are resolved on every
// read with a single lookup.
package session
