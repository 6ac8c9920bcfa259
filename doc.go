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

// jinfer provides type inference for generic method and constructor invocations and poly
// expressions, following chapter 18 of the Java Language Specification.
//
// Inference proceeds in phases over one InferenceContext:
//
//   * Constraint formulas relating argument expressions to formal parameter types (and the
//     return type to the target type) are reduced into bounds on inference variables
//   * The bound set is closed under incorporation, deriving the bounds implied by pairs of bounds
//   * Each remaining variable is resolved to the LUB of its proper lower bounds or the GLB of its
//     proper upper bounds, falling back to a fresh capture when neither determines a type
//
// Lambdas, method references and conditionals which cannot be reduced before their input
// variables are known are deferred within the bound set, and scheduled by dependency order.
//
// Bound sets are persistent: copies made for speculative resolution share structure with the
// original and are isolated from it.
//
//
// Links:
//
// JLS 18 (Type Inference): https://docs.oracle.com/javase/specs/jls/se17/html/jls-18.html
//
// JLS 4.10.4 (Least Upper Bound): https://docs.oracle.com/javase/specs/jls/se17/html/jls-4.html#jls-4.10.4
package jinfer
