// Package cli implements the fabricsight command-line interface.
//
// # Commands
//
// collect - Run one collection pass across all configured domains:
//
//	fabricsight collect --config fabricsight.yaml [--output FILE] [--format json|yaml|table]
//
// Connects to every domain named in the configuration, pulls the record
// collection (and optionally the bulk telemetry dump), and emits the
// merged result set. Domains fail independently; a failed domain appears
// in the output with its error, next to the successful reports.
//
// serve - Serve the latest reports over HTTP:
//
//	fabricsight serve --config fabricsight.yaml [--schedule "0 */6 * * *"]
//
// Runs an initial collection pass, then re-collects on the configured
// cron schedule. Reports are exposed at /v1/reports and
// /v1/reports/{domain}, with health, readiness, and prometheus metrics
// endpoints alongside.
//
// creds - Manage the encrypted credential store:
//
//	fabricsight creds set ucs-lab-admin < secret.txt
//	fabricsight creds list
//	fabricsight creds remove ucs-lab-admin
//
// Domain entries in the configuration can reference store entries via
// passwordRef instead of carrying literal passwords. The store
// passphrase is read from FABRICSIGHT_PASSPHRASE.
//
// # Environment Variables
//
//	LOG_LEVEL                Set logging verbosity (debug, info, warn, error)
//	FABRICSIGHT_CONFIG       Default run configuration path
//	FABRICSIGHT_CRED_STORE   Default credential store path
//	FABRICSIGHT_PASSPHRASE   Credential store passphrase
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/fabricsight/fabricsight/pkg/cli.version=1.0.0'"
package cli
