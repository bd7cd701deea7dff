// Package testutil provides fixtures for nox tests.
//
// Key components:
//   - Isolate: points every NOX_* directory at a fresh temp root
//   - WriteTarGz / WriteZip: build small archives inline
//   - Env.DefinePackage: writes a local archive plus a TOML definition that
//     installs it, so commands can run end to end without the network
//
// All test data is defined inline, not in external files.
package testutil
