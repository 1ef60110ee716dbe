// Package pbxprojtest provides Xcode project fixtures for tests.
package pbxprojtest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// RunnerProject is a trimmed Flutter iOS project. The Runner target has
// Debug and Release configurations linking the Pods framework and a Profile
// configuration with no OTHER_LDFLAGS. RunnerTests links the same tokens and
// must never be touched by a Runner patch.
const RunnerProject = `// !$*UTF8*$!
{
	archiveVersion = 1;
	classes = {
	};
	objectVersion = 54;
	objects = {

/* Begin PBXNativeTarget section */
		331C8080294A63A400263BE5 /* RunnerTests */ = {
			isa = PBXNativeTarget;
			buildConfigurationList = 331C8087294A63A400263BE5 /* Build configuration list for PBXNativeTarget "RunnerTests" */;
			buildPhases = (
			);
			name = RunnerTests;
			productName = RunnerTests;
			productType = "com.apple.product-type.bundle.unit-test";
		};
		97C146ED1CF9000F007C117D /* Runner */ = {
			isa = PBXNativeTarget;
			buildConfigurationList = 97C147051CF9000F007C117D /* Build configuration list for PBXNativeTarget "Runner" */;
			buildPhases = (
			);
			name = Runner;
			productName = Runner;
			productType = "com.apple.product-type.application";
		};
/* End PBXNativeTarget section */

/* Begin PBXProject section */
		97C146E61CF9000F007C117D /* Project object */ = {
			isa = PBXProject;
			buildConfigurationList = 97C146E91CF9000F007C117D /* Build configuration list for PBXProject "Runner" */;
			compatibilityVersion = "Xcode 9.3";
			targets = (
				97C146ED1CF9000F007C117D /* Runner */,
				331C8080294A63A400263BE5 /* RunnerTests */,
			);
		};
/* End PBXProject section */

/* Begin XCBuildConfiguration section */
		249021D4217E4FDB00AE95B9 /* Profile */ = {
			isa = XCBuildConfiguration;
			buildSettings = {
				PRODUCT_BUNDLE_IDENTIFIER = com.example.app;
				SWIFT_VERSION = 5.0;
			};
			name = Profile;
		};
		331C8088294A63A400263BE5 /* Debug */ = {
			isa = XCBuildConfiguration;
			buildSettings = {
				OTHER_LDFLAGS = (
					"-framework",
					Pods_Runner,
				);
			};
			name = Debug;
		};
		97C147031CF9000F007C117D /* Debug */ = {
			isa = XCBuildConfiguration;
			buildSettings = {
				ONLY_ACTIVE_ARCH = YES;
			};
			name = Debug;
		};
		97C147061CF9000F007C117D /* Debug */ = {
			isa = XCBuildConfiguration;
			buildSettings = {
				OTHER_LDFLAGS = (
					"-ObjC",
					"-framework",
					Pods_Runner,
					"-lz",
				);
				PRODUCT_BUNDLE_IDENTIFIER = com.example.app;
			};
			name = Debug;
		};
		97C147071CF9000F007C117D /* Release */ = {
			isa = XCBuildConfiguration;
			buildSettings = {
				OTHER_LDFLAGS = (
					"$(inherited)",
					"-framework",
					Pods_Runner,
					"-framework",
					Flutter,
				);
				PRODUCT_BUNDLE_IDENTIFIER = com.example.app;
			};
			name = Release;
		};
/* End XCBuildConfiguration section */

/* Begin XCConfigurationList section */
		331C8087294A63A400263BE5 /* Build configuration list for PBXNativeTarget "RunnerTests" */ = {
			isa = XCConfigurationList;
			buildConfigurations = (
				331C8088294A63A400263BE5 /* Debug */,
			);
			defaultConfigurationIsVisible = 0;
			defaultConfigurationName = Release;
		};
		97C146E91CF9000F007C117D /* Build configuration list for PBXProject "Runner" */ = {
			isa = XCConfigurationList;
			buildConfigurations = (
				97C147031CF9000F007C117D /* Debug */,
			);
			defaultConfigurationIsVisible = 0;
			defaultConfigurationName = Release;
		};
		97C147051CF9000F007C117D /* Build configuration list for PBXNativeTarget "Runner" */ = {
			isa = XCConfigurationList;
			buildConfigurations = (
				97C147061CF9000F007C117D /* Debug */,
				97C147071CF9000F007C117D /* Release */,
				249021D4217E4FDB00AE95B9 /* Profile */,
			);
			defaultConfigurationIsVisible = 0;
			defaultConfigurationName = Release;
		};
/* End XCConfigurationList section */
	};
	rootObject = 97C146E61CF9000F007C117D /* Project object */;
}
`

// NoRunnerProject renames the Runner target so a Runner lookup fails.
var NoRunnerProject = strings.ReplaceAll(RunnerProject, "name = Runner;", "name = App;")

// ScalarFlagsProject stores Runner's Debug OTHER_LDFLAGS as a single string.
var ScalarFlagsProject = strings.Replace(RunnerProject, `OTHER_LDFLAGS = (
					"-ObjC",
					"-framework",
					Pods_Runner,
					"-lz",
				);`, `OTHER_LDFLAGS = "-ObjC -framework Pods_Runner";`, 1)

// UnicodeDisplayName holds Latin-1, CJK, and astral-plane characters.
const UnicodeDisplayName = "Café 🚀 日本"

// UnicodeScript holds characters that must be escaped inside a quoted string.
const UnicodeScript = "echo \"✅ done\"\n\tcp \\\\server\\share ."

// UnicodeProject adds a non-ASCII display name and a multi-line script
// setting to Runner's Profile configuration.
var UnicodeProject = strings.Replace(RunnerProject, "SWIFT_VERSION = 5.0;",
	`INFOPLIST_KEY_CFBundleDisplayName = "Café 🚀 日本";
				SWIFT_VERSION = 5.0;
				XCFIX_SCRIPT = "echo \"✅ done\"\n\tcp \\\\server\\share .";`, 1)

// WriteBundle writes content as <dir>/Runner.xcodeproj/project.pbxproj and
// returns the bundle path.
func WriteBundle(t *testing.T, dir, content string) string {
	t.Helper()
	bundle := filepath.Join(dir, "Runner.xcodeproj")
	if err := os.MkdirAll(bundle, 0755); err != nil {
		t.Fatalf("creating bundle: %v", err)
	}
	if err := os.WriteFile(filepath.Join(bundle, "project.pbxproj"), []byte(content), 0644); err != nil {
		t.Fatalf("writing project.pbxproj: %v", err)
	}
	return bundle
}
