package levels

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

var ErrEmptyManifest = errors.New("levels: manifest lists no levels")

// Manifest is the play order of levels.
type Manifest struct {
	Levels []string `yaml:"levels"`
}

func LoadManifest() (Manifest, error) {
	data, err := Read(manifestFile)
	if err != nil {
		return Manifest{}, err
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("levels: unmarshal manifest: %w", err)
	}
	if len(m.Levels) == 0 {
		return Manifest{}, ErrEmptyManifest
	}
	return m, nil
}

// Index returns the position of name in the play order.
func (m Manifest) Index(name string) (int, bool) {
	for i, n := range m.Levels {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

// LoadAll loads every named level in parallel and returns them in order.
// The first failure cancels the rest.
func LoadAll(ctx context.Context, names []string) ([]*Level, error) {
	out := make([]*Level, len(names))
	g, ctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			lvl, err := LoadLevel(name)
			if err != nil {
				return err
			}
			out[i] = lvl
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
