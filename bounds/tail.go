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

package bounds

import "golang.org/x/exp/constraints"

// TailCounts returns the cumulative counts from each grade to the worst grade:
// tail[i] = freq[i] + freq[i+1] + ... + freq[len-1].
// freq is ordered best to worst. The result has the same length and is
// non-increasing, with tail[len-1] == freq[len-1].
func TailCounts[T constraints.Integer](freq []T) []T {
	tail := make([]T, len(freq))
	var acc T
	for i := len(freq) - 1; i >= 0; i-- {
		acc += freq[i]
		tail[i] = acc
	}
	return tail
}
