package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAdmins(t *testing.T) {
	got := parseAdmins([]string{"root@x.com", " ops@x.com = Ops Team ", "", "=nobody"})

	assert.Equal(t, []adminSpec{
		{Email: "root@x.com"},
		{Email: "ops@x.com", Name: "Ops Team"},
	}, got)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a@x.com", "b@x.com=B"}, splitList(" a@x.com, ,b@x.com=B,"))
	assert.Nil(t, splitList(""))
}
