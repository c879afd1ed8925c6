package types

import (
	"fmt"
	"sort"
	"time"
)

// DateLayout is the wire format for origin_date values in change-sets.
const DateLayout = "2006-01-02"

// editableFields is the closed set of HeritageObject fields an edit
// proposal may touch. Media paths and archival identifiers are
// deliberately excluded; those change only through staff tooling.
var editableFields = map[string]struct{}{
	"title": {}, "title_ar": {}, "title_fr": {},
	"description": {}, "description_ar": {}, "description_fr": {},
	"region": {}, "object_type": {}, "ich_domain": {}, "origin_date": {},
	"alternate_name": {}, "maker": {}, "attribution": {}, "period": {},
	"origin_place": {}, "materials": {}, "dimensions": {}, "weight": {},
}

// requiredFields may not be cleared by a change-set.
var requiredFields = map[string]struct{}{
	"title": {}, "description": {}, "region": {}, "object_type": {},
	"ich_domain": {}, "origin_date": {},
}

func EditableFields() []string {
	out := make([]string, 0, len(editableFields))
	for name := range editableFields {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func IsEditableField(name string) bool {
	_, ok := editableFields[name]
	return ok
}

// ValidateChangeSet rejects unknown keys, empty change-sets, cleared
// required fields, bad enum codes, and unparseable dates. It is called
// when a proposal is created and again before it is applied.
func ValidateChangeSet(changes map[string]string) error {
	if len(changes) == 0 {
		return fmt.Errorf("Change-set is empty")
	}
	for name, value := range changes {
		if !IsEditableField(name) {
			return fmt.Errorf("Unknown editable field %q", name)
		}
		if value == "" {
			if _, required := requiredFields[name]; required {
				return fmt.Errorf("Field %q is required and cannot be cleared", name)
			}
			continue
		}
		switch name {
		case "region":
			if !Region(value).Valid() {
				return fmt.Errorf("Unknown region %q", value)
			}
		case "object_type":
			if !ObjectType(value).Valid() {
				return fmt.Errorf("Unknown object type %q", value)
			}
		case "ich_domain":
			if !ICHDomain(value).Valid() {
				return fmt.Errorf("Unknown ICH domain %q", value)
			}
		case "origin_date":
			if _, err := time.Parse(DateLayout, value); err != nil {
				return fmt.Errorf("Invalid origin_date %q: %w", value, err)
			}
		}
	}
	return nil
}

// FieldValue renders the object's current value of an editable field
// as its change-set string form, for diffing.
func (o *HeritageObject) FieldValue(name string) string {
	switch name {
	case "title":
		return o.Title
	case "title_ar":
		return o.TitleAr
	case "title_fr":
		return o.TitleFr
	case "description":
		return o.Description
	case "description_ar":
		return o.DescriptionAr
	case "description_fr":
		return o.DescriptionFr
	case "region":
		return string(o.Region)
	case "object_type":
		return string(o.ObjectType)
	case "ich_domain":
		return string(o.ICHDomain)
	case "origin_date":
		return o.OriginDate.Format(DateLayout)
	case "alternate_name":
		return o.AlternateName
	case "maker":
		return o.Maker
	case "attribution":
		return o.Attribution
	case "period":
		return o.Period
	case "origin_place":
		return o.OriginPlace
	case "materials":
		return o.Materials
	case "dimensions":
		return o.Dimensions
	case "weight":
		return o.Weight
	}
	return ""
}

// ApplyChangeSet writes the change-set onto the object. Untouched
// fields are preserved; an empty value clears an optional field. The
// change-set must already have passed ValidateChangeSet, but this
// revalidates so a stale stored proposal can never apply by name.
func (o *HeritageObject) ApplyChangeSet(changes map[string]string) error {
	if err := ValidateChangeSet(changes); err != nil {
		return err
	}
	for name, value := range changes {
		switch name {
		case "title":
			o.Title = value
		case "title_ar":
			o.TitleAr = value
		case "title_fr":
			o.TitleFr = value
		case "description":
			o.Description = value
		case "description_ar":
			o.DescriptionAr = value
		case "description_fr":
			o.DescriptionFr = value
		case "region":
			o.Region = Region(value)
		case "object_type":
			o.ObjectType = ObjectType(value)
		case "ich_domain":
			o.ICHDomain = ICHDomain(value)
		case "origin_date":
			parsed, err := time.Parse(DateLayout, value)
			if err != nil {
				return fmt.Errorf("Invalid origin_date %q: %w", value, err)
			}
			o.OriginDate = parsed
		case "alternate_name":
			o.AlternateName = value
		case "maker":
			o.Maker = value
		case "attribution":
			o.Attribution = value
		case "period":
			o.Period = value
		case "origin_place":
			o.OriginPlace = value
		case "materials":
			o.Materials = value
		case "dimensions":
			o.Dimensions = value
		case "weight":
			o.Weight = value
		}
	}
	return nil
}
