// Package dom is the document host components are bound to.
//
// A Document wraps a golang.org/x/net/html tree. Node identity is the
// *html.Node pointer. Reads are plain functions over nodes; every write goes
// through a Document method so it can be counted and reported to mutation
// observers, the way a browser queues MutationRecords.
//
// Observers never run synchronously inside a write. Records accumulate until
// Flush, which plays the role of the microtask checkpoint: each observer with
// pending records receives them as one batch.
//
//	doc, _ := dom.ParseString(`<body><button class="btn">Buy</button></body>`)
//	obs := doc.Observe(doc.Body(), dom.MutationObserverInit{ChildList: true, Subtree: true},
//	    func(batch []dom.MutationRecord) { ... })
//	defer obs.Disconnect()
//
//	btn, _ := doc.QuerySelector(".btn")
//	doc.Remove(btn)
//	doc.Flush() // callback runs here with one ChildList record
//
// A Document is not safe for concurrent use. Hosts with several goroutines
// funnel access through a single UI goroutine (see package loop).
package dom
