package core

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorKinds(t *testing.T) {
	cases := []struct {
		err  error
		is   func(error) bool
		not  []func(error) bool
		want string
	}{
		{NewInputError("no rows"), IsInputError, []func(error) bool{IsOptionError, IsRangeError}, "no rows"},
		{NewOptionError("side", "left", "pos|neg|both|alt"), IsOptionError, []func(error) bool{IsInputError, IsRangeError}, `side="left"`},
		{NewRangeError("conf_level", 1.5, "(0,1)"), IsRangeError, []func(error) bool{IsInputError, IsOptionError}, "conf_level=1.5"},
	}
	for _, tc := range cases {
		if !tc.is(tc.err) {
			t.Errorf("%v: kind check failed", tc.err)
		}
		for _, not := range tc.not {
			if not(tc.err) {
				t.Errorf("%v: matched a foreign kind", tc.err)
			}
		}
		if !strings.Contains(tc.err.Error(), tc.want) {
			t.Errorf("%v: missing %q", tc.err, tc.want)
		}
	}
}

func TestEmptySampleIsInputError(t *testing.T) {
	if !errors.Is(ErrEmptySample, ErrInvalidInput) {
		t.Error("ErrEmptySample must wrap ErrInvalidInput")
	}
	if !IsInputError(ErrEmptySample) {
		t.Error("IsInputError must accept ErrEmptySample")
	}
}
