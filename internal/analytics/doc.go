// Package analytics implements the temporal aggregation and ranking engine.
//
// Every builder is a pure function over the in-memory dataset: it never mutates
// its input, allocates fresh output per call, and handles malformed or missing
// nested data by contributing zero instead of failing. Callers are expected to
// recompute on every dataset or window change; there is no caching here.
package analytics
