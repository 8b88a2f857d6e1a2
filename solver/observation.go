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

package solver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/creditrisk/prudentpd-go/grades"
)

var validate = validator.New()

// Observation is the default experience of one grade: N obligors observed, K of which
// defaulted.
type Observation struct {
	N uint64 `validate:"gt=0"`
	K uint64 `validate:"ltefield=N"`
}

// Validate checks 0 <= K <= N and N > 0.
func (o Observation) Validate() error {
	if err := validate.Struct(o); err != nil {
		return invalid("observation", err)
	}
	return nil
}

func validateProbability(name string, p float64) error {
	if err := validate.Var(p, "gte=0,lte=1"); err != nil {
		return invalid(name, err)
	}
	return nil
}

func validateConfidence(gamma float64) error {
	if err := validate.Var(gamma, "gt=0,lt=1"); err != nil {
		return invalid("confidence level", err)
	}
	return nil
}

// invalid turns validator output into a grades.ErrInvalidParameter error.
func invalid(name string, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %s: %v", grades.ErrInvalidParameter, name, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(name, fe))
	}
	return fmt.Errorf("%w: %s", grades.ErrInvalidParameter, strings.Join(msgs, "; "))
}

func describe(name string, fe validator.FieldError) string {
	field := fe.Field()
	if field == "" {
		field = name
	}
	switch fe.Tag() {
	case "gt":
		return fmt.Sprintf("%s must be greater than %s: %v", field, fe.Param(), fe.Value())
	case "lt":
		return fmt.Sprintf("%s must be less than %s: %v", field, fe.Param(), fe.Value())
	case "gte", "lte":
		return fmt.Sprintf("%s must be in [0, 1]: %v", field, fe.Value())
	case "ltefield":
		return fmt.Sprintf("%s cannot exceed %s: %v", field, fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %q: %v", field, fe.Tag(), fe.Value())
	}
}
