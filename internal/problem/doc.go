// Package problem loads optimization problem descriptions and builds the
// analysis objects they describe.
//
// A problem file is YAML (.yaml, .yml) or CUE (.cue). Both decode into the
// same Problem document. YAML is decoded strictly, so unknown keys are
// errors. CUE documents are unified with the embedded #Problem schema
// before decoding.
//
// Example (YAML):
//
//	name: wingbox
//	threads: 4
//	panels:
//	  - {name: skin-1, dv: 0, thickness: 0.010, lower: 0.002, upper: 0.05}
//	  - {name: skin-2, dv: 1, thickness: 0.012, lower: 0.002, upper: 0.05}
//	constraints:
//	  - kind: adjacency
//	    name: skin-taper
//	    vars: [0, 1]
//	    max_step: 0.0025
//
// Names are normalized to Unicode NFC on load.
package problem
