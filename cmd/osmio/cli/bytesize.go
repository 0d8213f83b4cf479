// Copyright 2026 the original author or authors.
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

package cli

import (
	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/pflag"
)

// -- byte size Value
type byteSizeValue struct {
	value *uint64
}

// NewByteSizeValue creates a pflag Value that accepts humanized byte sizes
// such as "64KiB" or "1MB".
func NewByteSizeValue(def uint64, p *uint64) pflag.Value {
	bsv := &byteSizeValue{value: p}
	*bsv.value = def

	return bsv
}

func (b *byteSizeValue) Set(val string) error {
	n, err := humanize.ParseBytes(val)
	if err != nil {
		return err
	}

	*b.value = n

	return nil
}

func (b *byteSizeValue) Type() string {
	return "byteSize"
}

func (b *byteSizeValue) String() string {
	return humanize.IBytes(*b.value)
}
