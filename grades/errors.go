/*
 * Licensed to the Apache Software Foundation (ASF) under one or more
 * contributor license agreements.  See the NOTICE file distributed with
 * this work for additional information regarding copyright ownership.
 * The ASF licenses this file to You under the Apache License, Version 2.0
 * (the "License"); you may not use this file except in compliance with
 * the License.  You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package grades

import "errors"

// Errors shared by every package that consumes a Scale. Callers match them with errors.Is.
var (
	// ErrInvalidParameter reports an argument outside its admissible range, such as a
	// confidence level outside (0, 1) or a grade label that is not on the scale.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrShapeMismatch reports a per-grade sequence whose length differs from the scale.
	ErrShapeMismatch = errors.New("shape mismatch")
)
