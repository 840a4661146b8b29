// Copyright 2025 Magnus Pierre
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const queryDoc = `name,Rank,Staff,Level
Ada,Recruit,True,12
Lee,Recruit,False,7
Mara,Captain,True,31
Ives,Sergeant,,19
`

func TestRoleDict(t *testing.T) {
	st := newTestStore(t, queryDoc)

	// Lee's Staff parsed to false and was suppressed; Ives has an empty
	// Staff cell, which is a stored value, not an absence.
	assert.Equal(t, map[string]Value{"Ada": "True", "Mara": "True", "Ives": ""}, st.RoleDict("Staff"))
	assert.Equal(t, map[string]Value{"Ada": "Recruit", "Lee": "Recruit", "Mara": "Captain", "Ives": "Sergeant"}, st.RoleDict("Rank"))
}

func TestRoleDictUnknownRole(t *testing.T) {
	st := newTestStore(t, queryDoc)
	assert.Empty(t, st.RoleDict("Nope"))
	assert.Empty(t, st.FilteredRoleDict("Nope", EqualTo, "x"))
}

func TestFilteredRoleDict(t *testing.T) {
	st := newTestStore(t, queryDoc)

	assert.Equal(t, map[string]Value{"Ada": "Recruit", "Lee": "Recruit"},
		st.FilteredRoleDict("Rank", EqualTo, "Recruit"))

	// numeric comparison: "7" is excluded, "31" included, despite text order
	assert.Equal(t, map[string]Value{"Ada": "12", "Mara": "31", "Ives": "19"},
		st.FilteredRoleDict("Level", GreaterThan, "10"))
	assert.Equal(t, map[string]Value{"Lee": "7"},
		st.FilteredRoleDict("Level", LessOrEqual, "10"))
}

// Records lacking the role are excluded whatever the operator: NotEqualTo
// never matches an absent role.
func TestFilteredRoleDictAbsentRoleNeverMatches(t *testing.T) {
	st := newTestStore(t, queryDoc)
	got := st.FilteredRoleDict("Staff", NotEqualTo, "True")
	assert.Equal(t, map[string]Value{"Ives": ""}, got)
}

// EqualTo and NotEqualTo partition exactly the records carrying the role.
func TestFilteredRoleDictPartition(t *testing.T) {
	st := newTestStore(t, queryDoc)

	for _, role := range []string{"Rank", "Staff", "Level"} {
		all := st.RoleDict(role)
		eq := st.FilteredRoleDict(role, EqualTo, "Recruit")
		ne := st.FilteredRoleDict(role, NotEqualTo, "Recruit")

		union := make(map[string]Value)
		for k, v := range eq {
			union[k] = v
		}
		for k, v := range ne {
			_, overlap := eq[k]
			assert.False(t, overlap, "partition overlap on %s/%s", role, k)
			union[k] = v
		}
		assert.Equal(t, all, union, "partition union mismatch for role %s", role)
	}
}

func TestStoreLookup(t *testing.T) {
	st := newTestStore(t, queryDoc)

	rec, ok := st.Lookup("Ada")
	require.True(t, ok)
	assert.Equal(t, "Ada", rec.Name())

	_, ok = st.Lookup("Nobody")
	assert.False(t, ok)

	assert.True(t, st.IsKnown("Lee"))
	assert.False(t, st.IsKnown("Nobody"))
	assert.Equal(t, 4, st.Len())
	assert.Equal(t, []string{"Ada", "Ives", "Lee", "Mara"}, st.Names())
	assert.Equal(t, []string{"Rank", "Staff", "Level"}, st.RoleNames())
}

type evenLevel struct{}

func (evenLevel) Evaluate(rec *Record) (bool, error) {
	v, ok := rec.Role("Level")
	if !ok {
		return false, nil
	}
	n, err := v.Int()
	if err != nil {
		return false, err
	}
	return n%2 == 0, nil
}

func (evenLevel) Description() string { return "even level" }

func TestSelect(t *testing.T) {
	st := newTestStore(t, queryDoc)

	all, err := st.Select(nil)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	got, err := st.Select(evenLevel{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Contains(t, got, "Ada")
}

func TestAccessors(t *testing.T) {
	st := newTestStore(t, queryDoc)

	assert.Equal(t, "Recruit", st.GetString("Ada", "Rank"))
	assert.True(t, st.GetBool("Ada", "Staff"))
	assert.Equal(t, 12, st.GetInt("Ada", "Level"))
	assert.Equal(t, 31.0, st.GetFloat("Mara", "Level"))

	// degradation to type defaults, never an error
	assert.Equal(t, "", st.GetString("Nobody", "Rank"))
	assert.False(t, st.GetBool("Lee", "Staff"), "suppressed role reads as false")
	assert.Equal(t, 0, st.GetInt("Ada", "Rank"), "non-numeric value degrades to 0")
	assert.Equal(t, 0.0, st.GetFloat("Ada", "Missing"))
	assert.False(t, st.GetBool("Ada", "Level"), "numeric value is not a boolean literal")
}

func TestRoleValueSentinels(t *testing.T) {
	st := newTestStore(t, queryDoc)

	v, err := st.RoleValue("Ada", "Rank")
	require.NoError(t, err)
	assert.Equal(t, Value("Recruit"), v)

	_, err = st.RoleValue("Nobody", "Rank")
	assert.ErrorIs(t, err, ErrRecordNotFound)

	_, err = st.RoleValue("Lee", "Staff")
	assert.ErrorIs(t, err, ErrRoleNotFound)

	// the empty stored value is a legitimate value, not a sentinel
	v, err = st.RoleValue("Ives", "Staff")
	require.NoError(t, err)
	assert.Equal(t, Value(""), v)
}
