// Package mapping holds the static configuration that drives request
// construction: one table per operation kind, each mapping a type name
// (for example "media/video") to a Directive.
//
// A type name missing from a table is "not mapped", which is a valid state
// and never an error. Directives keep their optional fields verbatim; method
// and append defaults are resolved later, per operation kind, by the
// urlbuilder package.
//
// # Configuration file
//
//	get:
//	  media/video: {}
//	  media/image: { append: null }      # no trailing id segment
//	  media/text/words: { insert: text } # media/text/<text>/words/<id>
//	list:
//	  profile/blogs: { rewriteUrl: profile/media/product/$productId/blog, query: [page, size] }
//	assoc:
//	  audio/addAuthor: { insert: audio, data: authors }
package mapping
