package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategory_Scan(t *testing.T) {
	tests := []struct {
		in   interface{}
		want Category
	}{
		{"Work", CategoryWork},
		{[]byte("Study"), CategoryStudy},
		{"Personal", CategoryPersonal},
		{"Gardening", CategoryOther},
		{"", CategoryOther},
		{nil, CategoryOther},
	}

	for _, tt := range tests {
		var c Category
		assert.NoError(t, c.Scan(tt.in))
		assert.Equal(t, tt.want, c)
	}

	var c Category
	assert.Error(t, c.Scan(42))
}

func TestCategory_ValueNormalizesUnknown(t *testing.T) {
	v, err := Category("Hobby").Value()
	assert.NoError(t, err)
	assert.Equal(t, "Other", v)
}

func TestRole_Scan(t *testing.T) {
	var r Role
	assert.NoError(t, r.Scan("Admin"))
	assert.Equal(t, RoleAdmin, r)

	assert.NoError(t, r.Scan("superuser"))
	assert.Equal(t, RoleMember, r)
	assert.False(t, Role("superuser").Valid())
}

func TestTask_Status(t *testing.T) {
	assert.Equal(t, "Pending", Task{}.Status())
	assert.Equal(t, "Completed", Task{Completed: true}.Status())
}
