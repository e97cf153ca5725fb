// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchtable

// Schemas of the tables written by the benchmark tool. Columns the
// tool writes but no analysis reads (unit, iterations) are left
// undeclared and decode as strings.

// Throughput is the schema of the throughput benchmark.
var Throughput = Schema{
	Columns: []Column{
		{Name: "testcase", Kind: String},
		{Name: "benchmark", Kind: String},
		{Name: "symbols", Kind: Int},
		{Name: "symbol_size", Kind: Int},
		{Name: "type", Kind: String},
		{Name: "throughput", Kind: Float},
	},
}

// Probability is the schema of the decoding probability benchmark.
var Probability = Schema{
	Columns: []Column{
		{Name: "testcase", Kind: String},
		{Name: "benchmark", Kind: String},
		{Name: "symbols", Kind: Int},
		{Name: "symbol_size", Kind: Int},
		{Name: "erasure", Kind: Float},
		{Name: "used", Kind: Int},
		{Name: "density", Kind: Float, Optional: true},
		{Name: "runs", Kind: Int, Optional: true},
	},
}

// RankProbability extends Probability with the per-rank columns
// "rank 0" through "rank N-1", each counting the symbols received
// while the decoder had that rank.
var RankProbability = Schema{
	Columns:  Probability.Columns,
	Prefixes: []Column{{Name: "rank ", Kind: Float}},
}

// SymbolsNeeded is the schema for the extra-symbols scatter plots.
// Rows are identified within a configuration by their run number.
var SymbolsNeeded = Schema{
	Columns: []Column{
		{Name: "testcase", Kind: String},
		{Name: "benchmark", Kind: String},
		{Name: "symbols", Kind: Int},
		{Name: "symbol_size", Kind: Int},
		{Name: "erasure", Kind: Float},
		{Name: "used", Kind: Int},
		{Name: "runs", Kind: Int},
	},
}

// Overhead is the schema of the coding overhead benchmark.
var Overhead = Schema{
	Columns: []Column{
		{Name: "testcase", Kind: String},
		{Name: "benchmark", Kind: String},
		{Name: "symbols", Kind: Int},
		{Name: "symbol_size", Kind: Int},
		{Name: "used", Kind: Int},
		{Name: "coded", Kind: Int},
	},
}
