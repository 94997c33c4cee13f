// Package snapshot persists inspection snapshots: the rendered document and
// the live instance report taken at one point in time.
//
// A snapshot is stored as two objects, <name>.html and <name>.json, in a
// Store. DiskStore writes to a local directory; S3Store writes to a bucket:
//
//	snap, err := snapshot.Take(env, "checkout")
//	store, err := snapshot.Open(cfg.Snapshot)
//	locations, err := snapshot.Save(ctx, store, snap)
//
// Take reads the document and must run on the UI goroutine. Save and Load do
// I/O only and can run anywhere.
package snapshot
