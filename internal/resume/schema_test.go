package resume

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRecordValid(t *testing.T) {
	data := []byte(`{
		"personalInfo": {"fullName": "Jane Doe", "email": "jane@x.io"},
		"experience": [{"id": "e1", "company": "Acme", "position": "Engineer", "current": true}],
		"education": [],
		"skills": [{"id": "s1", "name": "Go", "level": "Expert"}]
	}`)

	rec, err := DecodeRecord(data)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", rec.PersonalInfo.FullName)
	require.Len(t, rec.Experience, 1)
	assert.True(t, rec.Experience[0].Current)
	assert.NotNil(t, rec.Education)
	assert.Equal(t, LevelExpert, rec.Skills[0].Level)
}

func TestDecodeRecordRejectsBadLevel(t *testing.T) {
	data := []byte(`{"personalInfo": {}, "experience": [], "education": [],
		"skills": [{"id": "s1", "name": "Go", "level": "Guru"}]}`)

	_, err := DecodeRecord(data)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.NotEmpty(t, verr.Errors)
	assert.Contains(t, verr.Errors[0].Field, "skills")
}

func TestDecodeRecordRejectsMissingSections(t *testing.T) {
	_, err := DecodeRecord([]byte(`{"personalInfo": {}}`))

	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestDecodeRecordRejectsDuplicateIDs(t *testing.T) {
	data := []byte(`{"personalInfo": {}, "experience": [{"id": "x"}, {"id": "x"}], "education": [], "skills": []}`)

	_, err := DecodeRecord(data)
	assert.True(t, errors.Is(err, ErrDuplicateID))
}

func TestDecodeRecordRejectsMalformedJSON(t *testing.T) {
	_, err := DecodeRecord([]byte(`{"personalInfo":`))
	assert.Error(t, err)
}
