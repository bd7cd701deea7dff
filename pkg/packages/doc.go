// Package packages defines the toolchains nox ships with and loads extra
// definitions from TOML or YAML files.
//
// A definition file looks like:
//
//	ref = "ninja"
//	display_name = "Ninja"
//	version = "1.11.1"
//	source_url = "https://github.com/ninja-build/ninja/releases/download/v1.11.1/ninja-linux.zip"
//
//	[dependencies]
//	build = ["gcc@^12"]
//
//	[output]
//	archive_subdir = "."
//	bin_dirs = ["."]
//
//	[hooks]
//	install = ["chmod +x ninja"]
//
// Hook commands run in order through the shell runner. Unless extract is
// set to false the source archive is unpacked before the install commands.
package packages
