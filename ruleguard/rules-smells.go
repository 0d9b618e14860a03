package gorules

import "github.com/quasilyte/go-ruleguard/dsl"

func smells(m dsl.Matcher) {
	// Two consecutive guards returning the same value can merge with ||.
	m.Match(`if $c1 { return $ret }; if $c2 { return $ret }`).
		Report(`two consecutive guards return the same value; consider merging conditions with ||`).
		Suggest(`if $c1 || $c2 { return $ret }`)

	m.Match(`if $c1 { continue }; if $c2 { continue }`).
		Report(`two consecutive continues; consider merging conditions with ||`).
		Suggest(`if $c1 || $c2 { continue }`)

	// Nested loops in the dispatch and formatting paths usually mean a
	// projection should be extracted.
	m.Match(`for $*_ { for $*_ { $*_ } }`).
		Report(`nested for-loop; consider extracting inner loop logic or reducing algorithmic complexity`)

	// fmt.Errorf without %w loses the error chain the dispatcher
	// classifies on.
	m.Match(`fmt.Errorf($fmt, $*_, $err)`).
		Where(m["err"].Type.Is(`error`) && !m["fmt"].Text.Matches(`%w`)).
		Report(`wrap errors with %w so errors.As keeps working`)
}
