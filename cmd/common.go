package main

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"
	"github.com/spf13/viper"
)

// Git covers the two repo operations the reporter needs. ExecGit shells
// out to the git binary; GoGit uses the embedded implementation. Tests
// substitute a fake.
type Git interface {
	Fetch(dir string) error
	Tags(dir string) ([]string, error)
}

// ExecGit runs the git binary in the repo directory.
type ExecGit struct{}

func (g ExecGit) Fetch(dir string) error {
	cmd := exec.Command("git", "fetch")
	cmd.Dir = dir
	// stdout and stderr discarded
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("git fetch in %s: %v", dir, err)
	}
	return nil
}

func (g ExecGit) Tags(dir string) ([]string, error) {
	cmd := exec.Command("git", "tag", "-l")
	cmd.Dir = dir
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("git tag -l in %s: %v", dir, err)
	}
	return strings.Split(out.String(), "\n"), nil
}

// GoGit talks to the repo with go-git. Fetching over ssh needs public
// keys; see PubKsGet.
type GoGit struct {
	PublicKeys *ssh.PublicKeys
}

func (g *GoGit) Fetch(dir string) error {
	r, err := git.PlainOpen(dir)
	if err != nil {
		return fmt.Errorf("could not open git repo %s: %v", dir, err)
	}
	err = r.Fetch(&git.FetchOptions{RemoteName: "origin", Auth: g.PublicKeys, InsecureSkipTLS: true})
	if err != nil && !strings.Contains(err.Error(), "already up-to-date") {
		return ErrKnownHostsWrap(fmt.Errorf("could not fetch %s: %v", dir, err))
	}
	return nil
}

func (g *GoGit) Tags(dir string) ([]string, error) {
	r, err := git.PlainOpen(dir)
	if err != nil {
		return nil, fmt.Errorf("could not open git repo %s: %v", dir, err)
	}
	iter, err := r.Tags()
	if err != nil {
		return nil, fmt.Errorf("could not list tags for %s: %v", dir, err)
	}
	tags := make([]string, 0)
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		tags = append(tags, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not list tags for %s: %v", dir, err)
	}
	return tags, nil
}

// get publicKeys
func PubKsGet(v *viper.Viper) (publicKeys *ssh.PublicKeys, err error) {
	prvKFilePath, err := PrvKFilePathGet(v)
	if err != nil {
		return nil, fmt.Errorf("could not get ssh key path: %v", err)
	}

	prvKPassword, err := PrvKPasswordGet(v, prvKFilePath)
	if err != nil {
		return nil, fmt.Errorf("could not get ssh key password: %v", err)
	}

	bytes, err := os.ReadFile(prvKFilePath)
	if err != nil {
		return nil, fmt.Errorf("could not read private key file: %v", err)
	}
	publicKeys, err = ssh.NewPublicKeys("git", bytes, prvKPassword)
	if err != nil {
		return nil, fmt.Errorf("could not generate signer keys: %v", err)
	}
	return publicKeys, nil
}

func ErrKnownHostsWrap(err error) error {
	if err != nil && strings.Contains(err.Error(), "knownhosts") {
		err = fmt.Errorf("problem with known_hosts entry for 'github.com'. try running `ssh-keyscan github.com >> ~/.ssh/known_hosts` on your cli: %v", err)
	}
	return err
}
