// Package tantivy provides the storage and query-execution core of an
// embedded full-text search engine.
//
// The library is organized around immutable segments. Three building blocks
// are exposed:
//
//   - termdict: a sorted, FST-backed term dictionary built once at segment
//     write time and reopened read-only for random lookup and ordered
//     streaming.
//   - collector: the per-query result-collection contract. A Collector is
//     shared read-only across segments; each segment gets its own
//     SegmentCollector, fed every matching document, then harvested into a
//     Fruit. MergeFruits combines the per-segment Fruits into the final
//     result.
//   - executor: fork-join dispatch of one unit of work per segment, either
//     inline or gated by a fixed pool of worker permits, with strict fault
//     propagation to the caller.
//
// The searcher package ties the three together:
//
//	exec := executor.MultiThread(4)
//	s := searcher.New(exec, segments)
//	fruit, err := searcher.Search(s, query.AllWeight{}, collector.DocCollector{})
//
// This package itself holds only the scalar types shared by the rest of the
// library.
package tantivy
