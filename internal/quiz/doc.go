// Package quiz reads the quiz catalogue: categories and the versioned
// question sets stored in MongoDB.
//
//	store := quiz.NewStore(db)
//	set, err := store.CurrentQuestions(ctx)
//	if errors.Is(err, quiz.ErrNoQuestions) {
//		// nothing published yet
//	}
//
// Questions reference their category by id. The Store resolves references
// with a single $in query per read, the same way session scores are resolved.
package quiz
