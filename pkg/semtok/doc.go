/*
Package semtok classifies the contents of Django template tags for syntax highlighting.

Overview:
--------

	  Tag Text                  Highlighter
	     |                           ^
	     v                           |
	+----------+    tokens     +------------+
	|  @block  | ------------> |  @semtok   |
	+----------+               +------------+
	     |                        |      |
	 Block variant            Tokens   Encode
	     |                   (absolute) (relative,
	Position info                       line based)

Classifications:
---------------
  - keyword       (commands and sub keywords like in, and, reversed)
  - excluded      (arguments of commands the parser does not understand)
  - identifier    (variables, attributes, filters)
  - literal       (quoted strings)
  - number        (numeric constants)
  - dot           (lookup separators)

Tokens produced by a single block are ordered by offset and never overlap.

Example Usage:
-------------

	blk := block.Parse("{% for x in items %}")
	data := semtok.Encode(text, blk.Spans())
*/
package semtok
