package practice

import (
	"errors"
	"fmt"
	"testing"

	"github.com/abhisek/wordiz/internal/sentence"
	"github.com/abhisek/wordiz/internal/session"
)

func TestDescribeError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{session.Invalid("start", session.ErrEmptySelection), "请至少选择一个单元"},
		{session.Invalid("start", session.ErrEmptyPool), "所选范围内没有可练习的内容"},
		{session.Invalid("check", fmt.Errorf("%w: 2 of 3", sentence.ErrTokenCount)), "请填写每一个单词"},
		{errors.New("boom"), "boom"},
	}
	for _, tt := range tests {
		if got := DescribeError(tt.err); got != tt.want {
			t.Errorf("DescribeError(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestPickerWraps(t *testing.T) {
	p := Picker{Options: []string{"a", "b", "c"}}
	p.Move(-1)
	if p.Value() != "c" {
		t.Errorf("Move(-1) from first = %q, want c", p.Value())
	}
	p.Move(2)
	if p.Value() != "b" {
		t.Errorf("Move(2) = %q, want b", p.Value())
	}

	var empty Picker
	empty.Move(1)
	if empty.Value() != "" {
		t.Errorf("empty picker value = %q", empty.Value())
	}
}
