// Command sedtool computes spectral energy distributions from likelihood
// fit results.
//
// Usage:
//
//	sedtool [--config run.yaml] [--verbose] <command>
//
// Examples:
//
//	sedtool sed --config vela.yaml
//	sedtool sed --butterfly --config vela.yaml
//	sedtool bins --config vela.yaml
//	sedtool blocks --p0 0.05 --config vela.yaml
//	sedtool counts --config vela.yaml counts.yaml
//	sedtool history --config vela.yaml
package main

func main() {
	Execute()
}
