package packages

import (
	"context"
	"fmt"

	"github.com/arthur-debert/nox/pkg/registry"
	"github.com/arthur-debert/nox/pkg/semver"
	"github.com/arthur-debert/nox/pkg/types"
)

// Builtins returns fresh copies of the definitions compiled into nox
func Builtins() []*types.PackageDefinition {
	return []*types.PackageDefinition{gcc(), cmake(), jdk(), kotlin(), zlib()}
}

// RegisterBuiltins adds every built-in definition to reg
func RegisterBuiltins(reg *registry.Registry) {
	for _, def := range Builtins() {
		registry.MustRegister(reg, def)
	}
}

func gcc() *types.PackageDefinition {
	const version = "12.2.0"
	dir := "gcc-" + version
	return &types.PackageDefinition{
		Ref:         "gcc",
		DisplayName: "GNU Compiler Collection",
		Description: "The GNU C, C++ and Fortran compilers, prebuilt for x86_64 Linux.",
		Provides:    []string{"gcc"},
		Version:     semver.MustParseVersion(version),
		SourceURL:   fmt.Sprintf("https://gfortran.meteodat.ch/download/x86_64/releases/%s.tar.xz", dir),
		Output: types.OutputLayout{
			ArchiveSubdir: dir,
			BinDirs:       []string{"bin"},
			LibDirs:       []string{"lib64"},
			IncludeDirs:   []string{"include"},
		},
	}
}

func cmake() *types.PackageDefinition {
	const version = "3.25.0"
	dir := fmt.Sprintf("cmake-%s-linux-x86_64", version)
	return &types.PackageDefinition{
		Ref:         "cmake",
		DisplayName: "CMake",
		Description: "Cross-platform build system generator.",
		Provides:    []string{"cmake"},
		Version:     semver.MustParseVersion(version),
		SourceURL:   fmt.Sprintf("https://github.com/Kitware/CMake/releases/download/v%s/%s.tar.gz", version, dir),
		Output: types.OutputLayout{
			ArchiveSubdir: dir,
			BinDirs:       []string{"bin"},
		},
	}
}

func jdk() *types.PackageDefinition {
	const version = "17.0.5"
	dir := fmt.Sprintf("jdk-%s+8", version)
	return &types.PackageDefinition{
		Ref:          "jdk",
		DisplayName:  "Java 17 Development Kit",
		Description:  "Eclipse Temurin build of OpenJDK 17.",
		Provides:     []string{"java", "jdk"},
		Version:      semver.MustParseVersion(version),
		Dependencies: []types.PackageDependency{types.RuntimeDep("zlib@*")},
		SourceURL: fmt.Sprintf(
			"https://github.com/adoptium/temurin17-binaries/releases/download/jdk-%s%%2B8/OpenJDK17U-jdk_x64_linux_hotspot_%s_8.tar.gz",
			version, version),
		Output: types.OutputLayout{
			ArchiveSubdir: dir,
			BinDirs:       []string{"bin"},
			LibDirs:       []string{"lib"},
			IncludeDirs:   []string{"include"},
		},
		Install: extractThen(fmt.Sprintf("chmod +x './%s/bin/'*", dir)),
	}
}

func kotlin() *types.PackageDefinition {
	const version = "1.7.21"
	return &types.PackageDefinition{
		Ref:          "kotlin",
		DisplayName:  "Kotlin Language",
		Description:  "The Kotlin command line compiler.",
		Provides:     []string{"kotlin"},
		Version:      semver.MustParseVersion(version),
		Dependencies: []types.PackageDependency{types.RuntimeDep("jdk@*")},
		SourceURL: fmt.Sprintf("https://github.com/JetBrains/kotlin/releases/download/v%s/kotlin-compiler-%s.zip",
			version, version),
		Output: types.OutputLayout{
			ArchiveSubdir: "kotlinc",
			BinDirs:       []string{"bin"},
			LibDirs:       []string{"lib"},
		},
		Install: extractThen("chmod +x ./kotlinc/bin/*"),
	}
}

func zlib() *types.PackageDefinition {
	const version = "1.2.13"
	dir := "zlib-" + version
	return &types.PackageDefinition{
		Ref:         "zlib",
		DisplayName: "zlib",
		Description: "General purpose compression library, built from source.",
		Provides:    []string{"zlib"},
		Version:     semver.MustParseVersion(version),
		Dependencies: []types.PackageDependency{
			types.BuildDep("gcc@*"),
			types.BuildDep("cmake@*"),
		},
		SourceURL: fmt.Sprintf("https://zlib.net/%s.tar.gz", dir),
		Output: types.OutputLayout{
			ArchiveSubdir: dir,
			BinDirs:       []string{"bin"},
			LibDirs:       []string{"lib"},
		},
		Install: extractThen(
			fmt.Sprintf("cd %s && CC=gcc ./configure && make", dir),
			fmt.Sprintf("mkdir -p %s/lib && mv %s/libz.so* %s/lib/", dir, dir, dir),
		),
	}
}

// extractThen unpacks the source archive, then runs commands in order
func extractThen(commands ...string) types.HookFunc {
	return commandHook(true, commands)
}

// commandHook builds a hook that optionally extracts the archive and then
// runs each command through the shell runner, stopping at the first failure
func commandHook(extract bool, commands []string) types.HookFunc {
	return func(ctx context.Context, hc *types.HookContext) error {
		if extract && hc.Archive != "" {
			if err := hc.ExtractArchive(ctx); err != nil {
				return err
			}
		}
		for _, command := range commands {
			if _, err := hc.Sh(ctx, command); err != nil {
				return err
			}
		}
		return nil
	}
}
