package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleObject() *HeritageObject {
	return &HeritageObject{
		Title:       "Sadu weaving loom",
		TitleAr:     "نول السدو",
		Description: "A traditional Bedouin ground loom.",
		Region:      RegionEastern,
		ObjectType:  TypeTool,
		ICHDomain:   ICHCrafts,
		OriginDate:  time.Date(1930, 5, 1, 0, 0, 0, 0, time.UTC),
		Maker:       "unknown",
		Materials:   "wood, wool",
	}
}

func TestValidateChangeSet(t *testing.T) {
	cases := []struct {
		name    string
		changes map[string]string
		wantErr bool
	}{
		{"valid single field", map[string]string{"title": "New title"}, false},
		{"valid enum change", map[string]string{"region": "qassim"}, false},
		{"valid date change", map[string]string{"origin_date": "1952-07-23"}, false},
		{"clear optional field", map[string]string{"maker": ""}, false},
		{"empty change-set", map[string]string{}, true},
		{"unknown key", map[string]string{"image_path": "/tmp/x.jpg"}, true},
		{"unknown key among valid", map[string]string{"title": "ok", "bogus": "x"}, true},
		{"clear required field", map[string]string{"title": ""}, true},
		{"bad region", map[string]string{"region": "atlantis"}, true},
		{"bad object type", map[string]string{"object_type": "spaceship"}, true},
		{"bad ich domain", map[string]string{"ich_domain": "cooking"}, true},
		{"bad date", map[string]string{"origin_date": "sometime in the 50s"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateChangeSet(tc.changes)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestApplyChangeSetPreservesUntouchedFields(t *testing.T) {
	obj := sampleObject()
	err := obj.ApplyChangeSet(map[string]string{
		"title":       "Restored Sadu loom",
		"origin_date": "1925-01-15",
		"maker":       "",
	})
	require.NoError(t, err)

	assert.Equal(t, "Restored Sadu loom", obj.Title)
	assert.Equal(t, "1925-01-15", obj.OriginDate.Format(DateLayout))
	assert.Empty(t, obj.Maker)

	// Everything the change-set did not mention stays as it was.
	assert.Equal(t, "نول السدو", obj.TitleAr)
	assert.Equal(t, "A traditional Bedouin ground loom.", obj.Description)
	assert.Equal(t, RegionEastern, obj.Region)
	assert.Equal(t, TypeTool, obj.ObjectType)
	assert.Equal(t, ICHCrafts, obj.ICHDomain)
	assert.Equal(t, "wood, wool", obj.Materials)
}

func TestApplyChangeSetRejectsInvalid(t *testing.T) {
	obj := sampleObject()
	before := *obj
	err := obj.ApplyChangeSet(map[string]string{"region": "atlantis"})
	require.Error(t, err)
	assert.Equal(t, before, *obj)
}

func TestFieldValueRoundTrip(t *testing.T) {
	obj := sampleObject()
	for _, name := range EditableFields() {
		changes := map[string]string{name: obj.FieldValue(name)}
		if changes[name] == "" {
			continue
		}
		require.NoError(t, ValidateChangeSet(changes), "field %s", name)
		require.NoError(t, obj.ApplyChangeSet(changes), "field %s", name)
		assert.Equal(t, changes[name], obj.FieldValue(name), "field %s", name)
	}
}

func TestEditableFieldsIsClosed(t *testing.T) {
	fields := EditableFields()
	assert.Len(t, fields, 18)
	for _, locked := range []string{"image_path", "thumbnail_path", "model_3d_path", "accession_number", "guid", "id"} {
		assert.False(t, IsEditableField(locked), "field %s must not be editable", locked)
	}
}
