// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package propctx

// Frequency is the result of classifying how a method uses its distinguishing argument.
type Frequency int

const (
	// Never means the argument is never used as a dynamic property key.
	Never Frequency = iota
	// Sometimes means the argument is used both as a property key and for something else.
	Sometimes
	// Always means every recorded use of the argument is as a property key.
	Always
)

func (f Frequency) String() string {
	switch f {
	case Never:
		return "NEVER"
	case Sometimes:
		return "SOMETIMES"
	case Always:
		return "ALWAYS"
	default:
		return "?"
	}
}

// Classifier implements B1: classify a method as NEVER/SOMETIMES/ALWAYS using its distinguishing
// positional argument as a dynamic property key, memoizing per method identity (spec.md §8
// property 6, §9 "frequency cache"). The zero value is ready to use.
type Classifier struct {
	n     int
	cache map[string]Frequency
}

// NewClassifier builds a Classifier for distinguishing argument index n (zero-based).
func NewClassifier(n int) *Classifier {
	return &Classifier{n: n, cache: make(map[string]Frequency)}
}

// Classify returns m's frequency classification, consulting and then populating the memoization
// cache keyed on m's identity. A method with fewer than n+1 parameters is always NEVER (not an
// error: "callee has too few parameters for Core B" is an explicitly non-error outcome).
func (c *Classifier) Classify(m IR) Frequency {
	if m.NumParams() <= c.n {
		return Never
	}

	key := m.Method().String()
	if f, ok := c.cache[key]; ok {
		return f
	}

	f := c.classifyUncached(m)
	if c.cache == nil {
		c.cache = make(map[string]Frequency)
	}
	c.cache[key] = f
	return f
}

func (c *Classifier) classifyUncached(m IR) Frequency {
	arg := m.ParamValue(c.n)

	var usedAsProperty, usedAsOther bool
	for _, use := range m.UsesOf(arg) {
		switch use.Kind {
		case PropertyAccessUse, IsDefinedUse:
			if use.KeyOperand == arg {
				usedAsProperty = true
				continue
			}
			usedAsOther = true
		default:
			usedAsOther = true
		}
	}

	switch {
	case usedAsProperty && usedAsOther:
		return Sometimes
	case usedAsProperty:
		return Always
	default:
		return Never
	}
}
