// Package artifact holds the decoded builder artifact: the table of
// precomputed descriptors keyed by canonical id that the transform splices
// into rewritten call sites.
package artifact
