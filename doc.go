// Package quicknotes is the Composition Root for the QuickNotes application.
//
// It connects the note domain (pkg/core) with the in-memory store adapter
// (pkg/adapters/memory). Notes live only as long as the process.
//
// Usage:
//
//	svc, err := quicknotes.New(quicknotes.WithLogger(logger))
//
//	n, err := svc.Add(ctx, "Groceries", "milk, eggs")
//	_, err = svc.Update(ctx, n.ID, "Groceries", "milk, eggs, bread")
//	notes, err := svc.List(ctx)
//	err = svc.Delete(ctx, n.ID)
package quicknotes
