package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

func CMDVersions(v *viper.Viper, spec string) {
	var g Git = ExecGit{}
	if v.GetBool(GOGIT) {
		publicKeys, err := PubKsGet(v)
		if err != nil {
			log.Fatalf("could not get publicKeys: %v", err)
		}
		g = &GoGit{PublicKeys: publicKeys}
	}

	if err := VersionsReport(v, g, os.Stdout, spec); err != nil {
		log.Fatal(err)
	}
}

// VersionsReport prints one line per repo in the repos file: the repo
// basename and its latest tag that parses as a semantic version and
// matches spec, or "no match". Blank lines in the repos file are
// skipped; '#' lines print a blank line to keep the file's grouping
// visible in the output.
func VersionsReport(v *viper.Viper, g Git, out io.Writer, spec string) error {
	reposFile, err := ReposFileGet(v)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(reposFile)
	if err != nil {
		return fmt.Errorf("could not read repos file: %v", err)
	}
	repos := strings.Split(string(data), "\n")

	// parse the spec once up front. parsing it inside the loop would
	// blame a bad spec on whatever repo came first.
	var constraint *semver.Constraints
	if spec != "" {
		spec = strings.TrimPrefix(spec, "v")
		constraint, err = semver.NewConstraint(spec)
		if err != nil {
			return fmt.Errorf("bad version spec %q: %v", spec, err)
		}
	}

	fetch := !v.GetBool(NOFETCH)
	for _, repo := range repos {
		if repo == "" {
			continue
		}

		if strings.HasPrefix(repo, "#") {
			fmt.Fprintln(out)
			continue
		}

		if fetch {
			if err := g.Fetch(repo); err != nil {
				return err
			}
		}

		tags, err := g.Tags(repo)
		if err != nil {
			return err
		}

		versions := TagsFilter(tags, constraint)

		latest, err := VersionsMax(versions)
		if err != nil {
			return fmt.Errorf("invalid version in repo %s: %v", repo, versions)
		}
		if latest == "" {
			latest = "no match"
		}

		fmt.Fprintf(out, "%s: %s\n", filepath.Base(repo), latest)
	}
	return nil
}

// TagsFilter keeps the tags that parse as semantic versions and match
// the constraint, if any. The 'v' prefix is stripped; a partial version
// like '1.2' passes here but fails the strict sort in VersionsMax.
func TagsFilter(tags []string, constraint *semver.Constraints) []string {
	versions := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimPrefix(tag, "v")
		if tag == "" {
			continue
		}
		sv, err := semver.NewVersion(tag)
		if err != nil {
			continue
		}
		if constraint != nil && !constraint.Check(sv) {
			continue
		}
		versions = append(versions, tag)
	}
	return versions
}

// VersionsMax returns the greatest version under strict
// major.minor.patch ordering, or "" for an empty list. Any version
// that fails the strict parse makes the whole call fail.
func VersionsMax(versions []string) (string, error) {
	type tagVer struct {
		tag string
		ver *semver.Version
	}
	parsed := make([]tagVer, 0, len(versions))
	for _, tag := range versions {
		sv, err := semver.StrictNewVersion(tag)
		if err != nil {
			return "", fmt.Errorf("could not parse %s: %v", tag, err)
		}
		parsed = append(parsed, tagVer{tag: tag, ver: sv})
	}
	if len(parsed) == 0 {
		return "", nil
	}
	sort.Slice(parsed, func(i, j int) bool {
		return parsed[i].ver.LessThan(parsed[j].ver)
	})
	return parsed[len(parsed)-1].tag, nil
}
