/*
Package dsl provides a fluent Go API for defining surveys in code.

	b := dsl.New("q_start")
	b.YesNo("q_start", "q.start").Yes("q_crop").No("q_job")
	b.SingleBranch("q_crop", "q.crop").
		Option("maize", "opt.maize").Branch("maize", "flow_maize_1")
	graph, err := b.Build()

Questions are required unless marked Optional.
*/
package dsl
