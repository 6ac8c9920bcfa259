// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package types

// Kind classifies a type by its structural shape.
type Kind uint8

const (
	KindPrimitive Kind = iota
	KindVoid
	KindNull
	KindClass
	KindParameterized
	KindArray
	KindWildcard
	KindIntersection
	KindTypeParam
	KindInferenceVar
	KindCapture
)

var kindNames = [...]string{
	KindPrimitive:     "primitive",
	KindVoid:          "void",
	KindNull:          "null",
	KindClass:         "class",
	KindParameterized: "parameterized",
	KindArray:         "array",
	KindWildcard:      "wildcard",
	KindIntersection:  "intersection",
	KindTypeParam:     "type-parameter",
	KindInferenceVar:  "inference-variable",
	KindCapture:       "capture",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}
