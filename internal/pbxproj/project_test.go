package pbxproj

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/xcfix-labs/xcfix/internal/pbxproj/pbxprojtest"
)

func TestResolvePath(t *testing.T) {
	tmp := t.TempDir()
	bundle := pbxprojtest.WriteBundle(t, tmp, pbxprojtest.RunnerProject)
	file := filepath.Join(bundle, "project.pbxproj")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bundle", bundle, file},
		{"bundle not on disk", "ios/Runner.xcodeproj", filepath.Join("ios", "Runner.xcodeproj", "project.pbxproj")},
		{"file", file, file},
		{"plain directory", tmp, filepath.Join(tmp, "project.pbxproj")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolvePath(tt.in); got != tt.want {
				t.Errorf("ResolvePath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName("ios/Runner.xcodeproj"); got != "Runner.xcodeproj" {
		t.Errorf("DisplayName(bundle) = %q, want %q", got, "Runner.xcodeproj")
	}
	if got := DisplayName("ios/Runner.xcodeproj/project.pbxproj"); got != "Runner.xcodeproj" {
		t.Errorf("DisplayName(file) = %q, want %q", got, "Runner.xcodeproj")
	}
	if got := DisplayName("fixture.pbxproj"); got != "fixture.pbxproj" {
		t.Errorf("DisplayName(other) = %q, want %q", got, "fixture.pbxproj")
	}
}

func TestLoad(t *testing.T) {
	bundle := pbxprojtest.WriteBundle(t, t.TempDir(), pbxprojtest.RunnerProject)

	p, err := Load(bundle)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, err := p.Targets(); err != nil {
		t.Errorf("Targets failed on loaded project: %v", err)
	}
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "Missing.xcodeproj"))
	if err == nil {
		t.Fatal("expected error for missing project, got nil")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		t.Error("missing file must not be reported as a parse error")
	}
}

func TestLoadMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"garbage", "{ this is ( not a plist"},
		{"no objects", "{ archiveVersion = 1; rootObject = ABC; }"},
		{"no root object", "{ archiveVersion = 1; objects = { }; }"},
		{"not a dictionary", "( a, b, )"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bundle := pbxprojtest.WriteBundle(t, t.TempDir(), tt.content)
			_, err := Load(bundle)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *ParseError, got %T: %v", err, err)
			}
			if !strings.HasSuffix(pe.Path, "project.pbxproj") {
				t.Errorf("ParseError.Path = %q, want project.pbxproj path", pe.Path)
			}
		})
	}
}

func TestTargets(t *testing.T) {
	p, err := Parse([]byte(pbxprojtest.RunnerProject))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	targets, err := p.Targets()
	if err != nil {
		t.Fatalf("Targets failed: %v", err)
	}
	if len(targets) != 2 {
		t.Fatalf("expected 2 targets, got %d", len(targets))
	}
	if targets[0].Name != "Runner" || targets[1].Name != "RunnerTests" {
		t.Errorf("targets = [%s %s], want [Runner RunnerTests]", targets[0].Name, targets[1].Name)
	}
	if targets[0].ISA != ISANativeTarget {
		t.Errorf("ISA = %q, want %q", targets[0].ISA, ISANativeTarget)
	}
}

func TestTargetsSkipsNonTargetObjects(t *testing.T) {
	// RunnerTests becomes an aggregate target and the project object itself
	// is listed among the targets.
	content := strings.Replace(pbxprojtest.RunnerProject,
		"331C8080294A63A400263BE5 /* RunnerTests */,\n\t\t\t);",
		"331C8080294A63A400263BE5 /* RunnerTests */,\n\t\t\t\t97C146E61CF9000F007C117D,\n\t\t\t);", 1)
	content = strings.Replace(content, "isa = PBXNativeTarget;", "isa = PBXAggregateTarget;", 1)

	p, err := Parse([]byte(content))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	targets, err := p.Targets()
	if err != nil {
		t.Fatalf("Targets failed: %v", err)
	}
	if len(targets) != 2 {
		t.Fatalf("expected 2 targets, got %d", len(targets))
	}
	if targets[1].Name != "RunnerTests" || targets[1].ISA != ISAAggregateTarget {
		t.Errorf("targets[1] = %s (%s), want RunnerTests (%s)", targets[1].Name, targets[1].ISA, ISAAggregateTarget)
	}
}

func TestFindTarget(t *testing.T) {
	p, err := Parse([]byte(pbxprojtest.RunnerProject))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	target, err := p.FindTarget("Runner")
	if err != nil {
		t.Fatalf("FindTarget failed: %v", err)
	}
	if target == nil || target.ID != "97C146ED1CF9000F007C117D" {
		t.Fatalf("FindTarget(Runner) = %+v", target)
	}

	// Lookup is exact, not prefix or case-insensitive.
	for _, name := range []string{"runner", "Run", "Runner "} {
		target, err := p.FindTarget(name)
		if err != nil {
			t.Fatalf("FindTarget(%q) failed: %v", name, err)
		}
		if target != nil {
			t.Errorf("FindTarget(%q) = %s, want nil", name, target.Name)
		}
	}
}

func TestBuildConfigurations(t *testing.T) {
	p, err := Parse([]byte(pbxprojtest.RunnerProject))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	target, _ := p.FindTarget("Runner")

	configs, err := target.BuildConfigurations()
	if err != nil {
		t.Fatalf("BuildConfigurations failed: %v", err)
	}
	var names []string
	for _, c := range configs {
		names = append(names, c.Name)
	}
	if want := []string{"Debug", "Release", "Profile"}; !reflect.DeepEqual(names, want) {
		t.Errorf("configurations = %v, want %v", names, want)
	}

	flags, err := configs[0].StringList("OTHER_LDFLAGS")
	if err != nil {
		t.Fatalf("StringList failed: %v", err)
	}
	if want := []string{"-ObjC", "-framework", "Pods_Runner", "-lz"}; !reflect.DeepEqual(flags, want) {
		t.Errorf("Debug OTHER_LDFLAGS = %v, want %v", flags, want)
	}

	if configs[2].HasSetting("OTHER_LDFLAGS") {
		t.Error("Profile should not have OTHER_LDFLAGS")
	}
	flags, err = configs[2].StringList("OTHER_LDFLAGS")
	if err != nil || flags != nil {
		t.Errorf("StringList on missing key = %v, %v; want nil, nil", flags, err)
	}
}

func TestStringListScalar(t *testing.T) {
	p, err := Parse([]byte(pbxprojtest.ScalarFlagsProject))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	target, _ := p.FindTarget("Runner")
	configs, err := target.BuildConfigurations()
	if err != nil {
		t.Fatalf("BuildConfigurations failed: %v", err)
	}

	_, err = configs[0].StringList("OTHER_LDFLAGS")
	if !errors.Is(err, ErrNotSequence) {
		t.Errorf("expected ErrNotSequence, got %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	bundle := pbxprojtest.WriteBundle(t, t.TempDir(), pbxprojtest.RunnerProject)

	p, err := Load(bundle)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	target, _ := p.FindTarget("Runner")
	configs, _ := target.BuildConfigurations()
	configs[0].SetStringList("OTHER_LDFLAGS", []string{"-ObjC"})
	configs[2].SetStringList("OTHER_SWIFT_FLAGS", []string{"-DPROFILE"})

	if err := p.Save(bundle); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(ResolvePath(bundle))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte(utf8Marker+"\n")) {
		t.Error("saved project lost the UTF8 marker line")
	}

	reloaded, err := Load(bundle)
	if err != nil {
		t.Fatalf("reloading saved project: %v", err)
	}
	target, _ = reloaded.FindTarget("Runner")
	configs, _ = target.BuildConfigurations()

	flags, _ := configs[0].StringList("OTHER_LDFLAGS")
	if !reflect.DeepEqual(flags, []string{"-ObjC"}) {
		t.Errorf("Debug OTHER_LDFLAGS = %v, want [-ObjC]", flags)
	}
	flags, _ = configs[1].StringList("OTHER_LDFLAGS")
	if want := []string{"$(inherited)", "-framework", "Pods_Runner", "-framework", "Flutter"}; !reflect.DeepEqual(flags, want) {
		t.Errorf("Release OTHER_LDFLAGS = %v, want %v", flags, want)
	}
	flags, _ = configs[2].StringList("OTHER_SWIFT_FLAGS")
	if !reflect.DeepEqual(flags, []string{"-DPROFILE"}) {
		t.Errorf("Profile OTHER_SWIFT_FLAGS = %v, want [-DPROFILE]", flags)
	}
}

func TestSaveRoundTripUnicode(t *testing.T) {
	bundle := pbxprojtest.WriteBundle(t, t.TempDir(), pbxprojtest.UnicodeProject)

	p, err := Load(bundle)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := p.Save(bundle); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(ResolvePath(bundle))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte(`"`+pbxprojtest.UnicodeDisplayName+`"`)) {
		t.Errorf("display name not written as literal UTF-8:\n%s", data)
	}
	if bytes.Contains(data, []byte(`\U`)) || bytes.Contains(data, []byte(`\351`)) {
		t.Errorf("non-ASCII characters were escaped:\n%s", data)
	}

	reloaded, err := Load(bundle)
	if err != nil {
		t.Fatalf("reloading saved project: %v", err)
	}
	target, _ := reloaded.FindTarget("Runner")
	configs, _ := target.BuildConfigurations()
	profile := configs[2]

	tests := []struct {
		setting string
		want    string
	}{
		{"INFOPLIST_KEY_CFBundleDisplayName", pbxprojtest.UnicodeDisplayName},
		{"XCFIX_SCRIPT", pbxprojtest.UnicodeScript},
		{"SWIFT_VERSION", "5.0"},
	}
	for _, tt := range tests {
		got, _ := profile.Setting(tt.setting)
		if got != tt.want {
			t.Errorf("%s = %q, want %q", tt.setting, got, tt.want)
		}
	}
}

func TestEncodeLayout(t *testing.T) {
	p, err := Parse([]byte(pbxprojtest.RunnerProject))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	out, err := p.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	for _, want := range []string{
		utf8Marker + "\n{\n\tarchiveVersion = 1;\n",
		"\t\t97C146ED1CF9000F007C117D = {\n\t\t\tisa = PBXNativeTarget;\n\t\t\tbuildConfigurationList = 97C147051CF9000F007C117D;\n",
		"\t\t\t\tOTHER_LDFLAGS = (\n\t\t\t\t\t\"-ObjC\",\n\t\t\t\t\t\"-framework\",\n\t\t\t\t\tPods_Runner,\n",
		"\"$(inherited)\"",
		"productType = \"com.apple.product-type.application\";",
		"SWIFT_VERSION = 5.0;",
		"\trootObject = 97C146E61CF9000F007C117D;\n}\n",
	} {
		if !bytes.Contains(out, []byte(want)) {
			t.Errorf("encoded project missing %q:\n%s", want, out)
		}
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Pods_Runner", "Pods_Runner"},
		{"5.0", "5.0"},
		{"$SRCROOT/Flutter", "$SRCROOT/Flutter"},
		{"", `""`},
		{"-framework", `"-framework"`},
		{"$(inherited)", `"$(inherited)"`},
		{"Xcode 9.3", `"Xcode 9.3"`},
		{"//comment", `"//comment"`},
		{"Café 🚀 日本", `"Café 🚀 日本"`},
		{"say \"hi\"", `"say \"hi\""`},
		{"a\\b", `"a\\b"`},
		{"line\nnext\ttab", `"line\nnext\ttab"`},
		{"bell\a", `"bell\U0007"`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := quote(tt.in); got != tt.want {
				t.Errorf("quote(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestEncodeDeterministic(t *testing.T) {
	fixtures := map[string]string{
		"ascii":   pbxprojtest.RunnerProject,
		"unicode": pbxprojtest.UnicodeProject,
	}
	for name, content := range fixtures {
		t.Run(name, func(t *testing.T) {
			p, err := Parse([]byte(content))
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			first, err := p.Encode()
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}

			again, err := Parse(first)
			if err != nil {
				t.Fatalf("Parse(encoded) failed: %v", err)
			}
			second, err := again.Encode()
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if !bytes.Equal(first, second) {
				t.Errorf("encoding is not stable:\n--- first\n%s\n--- second\n%s", first, second)
			}
		})
	}
}
