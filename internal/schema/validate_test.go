package schema_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/folioworks/folio-api/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func blogSchema() *schema.Schema {
	return schema.Object("blog suggestions",
		schema.Required("summary", schema.String("summary").WithMinLength(1)),
		schema.Required("seoTitle", schema.String("title").WithLength(1, 59)),
		schema.Required("tags", schema.Array("tags", schema.String("tag").WithMinLength(1)).WithItems(3, 5)),
		schema.Optional("userType", schema.String("type").WithEnum("visitor", "recruiter", "other")),
		schema.Optional("leadEmail", schema.String("email").WithFormat(schema.FormatEmail)),
	)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		raw        string
		wantPaths  []string
		wantSubstr string
	}{
		{
			name: "valid",
			raw:  `{"summary":"s","seoTitle":"Go","tags":["a","b","c"],"userType":"recruiter","leadEmail":"jane@example.com"}`,
		},
		{
			name:      "missing required field",
			raw:       `{"seoTitle":"Go","tags":["a","b","c"]}`,
			wantPaths: []string{"summary"},
		},
		{
			name:      "null required field",
			raw:       `{"summary":null,"seoTitle":"Go","tags":["a","b","c"]}`,
			wantPaths: []string{"summary"},
		},
		{
			name:       "string over ceiling",
			raw:        `{"summary":"s","seoTitle":"` + strings.Repeat("x", 60) + `","tags":["a","b","c"]}`,
			wantPaths:  []string{"seoTitle"},
			wantSubstr: "at most 59 characters",
		},
		{
			name:       "too few tags",
			raw:        `{"summary":"s","seoTitle":"Go","tags":["a","b"]}`,
			wantPaths:  []string{"tags"},
			wantSubstr: "at least 3 items",
		},
		{
			name:      "empty tag element",
			raw:       `{"summary":"s","seoTitle":"Go","tags":["a","","c"]}`,
			wantPaths: []string{"tags[1]"},
		},
		{
			name:       "wrong enum value",
			raw:        `{"summary":"s","seoTitle":"Go","tags":["a","b","c"],"userType":"investor"}`,
			wantPaths:  []string{"userType"},
			wantSubstr: "must be one of",
		},
		{
			name:      "invalid email",
			raw:       `{"summary":"s","seoTitle":"Go","tags":["a","b","c"],"leadEmail":"not-an-email"}`,
			wantPaths: []string{"leadEmail"},
		},
		{
			name: "empty optional string treated as absent",
			raw:  `{"summary":"s","seoTitle":"Go","tags":["a","b","c"],"leadEmail":""}`,
		},
		{
			name:      "wrong type",
			raw:       `{"summary":5,"seoTitle":"Go","tags":"a,b,c"}`,
			wantPaths: []string{"summary", "tags"},
		},
		{
			name:       "not an object",
			raw:        `["summary"]`,
			wantPaths:  []string{""},
			wantSubstr: "must be an object",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := blogSchema().Validate(decode(t, tt.raw))
			if len(tt.wantPaths) == 0 {
				assert.NoError(t, err)
				return
			}

			var verr *schema.ValidationError
			require.ErrorAs(t, err, &verr)
			paths := make([]string, 0, len(verr.Violations))
			for _, v := range verr.Violations {
				paths = append(paths, v.Path)
			}
			assert.ElementsMatch(t, tt.wantPaths, paths)
			if tt.wantSubstr != "" {
				assert.Contains(t, err.Error(), tt.wantSubstr)
			}
		})
	}
}

func TestValidateCountsCharactersNotBytes(t *testing.T) {
	t.Parallel()

	s := schema.String("title").WithMaxLength(3)
	assert.NoError(t, s.Validate("héé"), "three runes fit even though they are five bytes")
	assert.Error(t, s.Validate("héél"))
}

func TestValidateNotBlank(t *testing.T) {
	t.Parallel()

	s := schema.String("content").WithMinLength(1).WithNotBlank()
	assert.NoError(t, s.Validate(" hi "))
	assert.ErrorContains(t, s.Validate("   "), "must not be blank")
	assert.ErrorContains(t, s.Validate("\t\n"), "must not be blank")
	assert.NoError(t, schema.String("content").WithMinLength(1).Validate("   "), "length alone allows whitespace")
}

func TestValidateNumbers(t *testing.T) {
	t.Parallel()

	s := schema.Integer("views").WithMinimum(0)
	assert.NoError(t, s.Validate(float64(12)))
	assert.NoError(t, s.Validate(json.Number("3")))
	assert.ErrorContains(t, s.Validate(1.5), "must be an integer")
	assert.ErrorContains(t, s.Validate(float64(-1)), "at least 0")
	assert.ErrorContains(t, s.Validate("12"), "must be a number")
}

func TestApplyDefaults(t *testing.T) {
	t.Parallel()

	s := schema.Object("analysis",
		schema.Required("posts", schema.Array("posts", schema.Object("post",
			schema.Required("title", schema.String("title")),
			schema.Optional("viewCount", schema.Integer("views").WithDefault(float64(0))),
		))),
	)

	value := decode(t, `{"posts":[{"title":"a"},{"title":"b","viewCount":7},{"title":"c","viewCount":null}]}`)
	s.ApplyDefaults(value)

	posts := value.(map[string]any)["posts"].([]any)
	assert.Equal(t, float64(0), posts[0].(map[string]any)["viewCount"])
	assert.Equal(t, float64(7), posts[1].(map[string]any)["viewCount"])
	assert.Equal(t, float64(0), posts[2].(map[string]any)["viewCount"])
	assert.NoError(t, s.Validate(value))
}

func TestRequiredNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"summary", "seoTitle", "tags"}, blogSchema().RequiredNames())

	f, ok := blogSchema().Field("leadEmail")
	require.True(t, ok)
	assert.Equal(t, schema.FormatEmail, f.Schema.Format)

	_, ok = blogSchema().Field("missing")
	assert.False(t, ok)
}
