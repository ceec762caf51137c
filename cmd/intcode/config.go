// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2019 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

// runConfig holds the settings of the run command. It can be read from a TOML
// file like:
//
//	program = "day02.txt"
//	strict = true
//	inputs = [1, 2]
//	ascii = false
//
//	[patch]
//	1 = 12
//	2 = 2
type runConfig struct {
	Program string             `toml:"program"`
	Strict  bool               `toml:"strict"`
	Inputs  []vm.Cell          `toml:"inputs"`
	ASCII   bool               `toml:"ascii"`
	Patch   map[string]vm.Cell `toml:"patch"`
}

type patch struct {
	addr, value vm.Cell
}

func readConfigFile(name string) (*runConfig, error) {
	var cfg runConfig
	md, err := toml.DecodeFile(name, &cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "config %s", name)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		log.WithField("keys", undec).Warnf("%s: ignored unknown keys", name)
	}
	if cfg.Program != "" && !filepath.IsAbs(cfg.Program) {
		cfg.Program = filepath.Join(filepath.Dir(name), cfg.Program)
	}
	return &cfg, nil
}

// parsePatch parses an "addr=value" memory patch.
func parsePatch(s string) (patch, error) {
	i := strings.IndexByte(s, '=')
	if i < 0 {
		return patch{}, errors.Errorf("invalid patch %q: expected addr=value", s)
	}
	addr, err := strconv.ParseInt(strings.TrimSpace(s[:i]), 10, 64)
	if err != nil || addr < 0 {
		return patch{}, errors.Errorf("invalid patch address in %q", s)
	}
	v, err := strconv.ParseInt(strings.TrimSpace(s[i+1:]), 10, 64)
	if err != nil {
		return patch{}, errors.Errorf("invalid patch value in %q", s)
	}
	return patch{vm.Cell(addr), vm.Cell(v)}, nil
}

// patches returns the configured memory patches sorted by address.
func (c *runConfig) patches() ([]patch, error) {
	ps := make([]patch, 0, len(c.Patch))
	for k, v := range c.Patch {
		p, err := parsePatch(k + "=" + strconv.FormatInt(int64(v), 10))
		if err != nil {
			return nil, err
		}
		ps = append(ps, p)
	}
	sort.Slice(ps, func(i, j int) bool { return ps[i].addr < ps[j].addr })
	return ps, nil
}

// merge overrides the configuration with the flags set on the command line.
func (c *runConfig) merge(flags *pflag.FlagSet, args []string) error {
	if len(args) > 0 {
		c.Program = args[0]
	}
	if flags.Changed("strict") {
		c.Strict, _ = flags.GetBool("strict")
	}
	if flags.Changed("ascii") {
		c.ASCII, _ = flags.GetBool("ascii")
	}
	if flags.Changed("input") {
		s, _ := flags.GetString("input")
		in, err := vm.Parse(s)
		if err != nil {
			return errors.Wrap(err, "--input")
		}
		c.Inputs = in
	}
	sets, _ := flags.GetStringArray("set")
	for _, s := range sets {
		p, err := parsePatch(s)
		if err != nil {
			return err
		}
		if c.Patch == nil {
			c.Patch = make(map[string]vm.Cell)
		}
		c.Patch[strconv.FormatInt(int64(p.addr), 10)] = p.value
	}
	if c.Program == "" {
		return errors.New("no program file specified")
	}
	return nil
}

func (c *runConfig) policy() vm.Policy {
	if c.Strict {
		return vm.Strict
	}
	return vm.Extended
}
