package models

// ReplyMap is the flattened key/value view of a parsed processor reply.
type ReplyMap map[string]string

// Result is the normalized outcome of one gateway operation. Declines,
// faults and unparseable replies all come back as a non-success Result;
// callers distinguish them by Message and Params, never structurally.
type Result struct {
	Success       bool
	Message       string
	Params        ReplyMap
	Test          bool
	Authorization string
}
