package curly_test

import (
	"testing"

	curly "github.com/goliatone/go-curly"
	"github.com/goliatone/go-curly/pkg/testsupport"
)

func TestFormat_Goldens(t *testing.T) {
	cases := testsupport.Cases(t, "testdata")
	if len(cases) == 0 {
		t.Fatalf("no template fixtures found")
	}

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			tmpl := testsupport.LoadTemplate(t, tc.Template)
			data := testsupport.MustLoadData(t, tc.Data)

			got, err := curly.Format(tmpl, data)
			if err != nil {
				t.Fatalf("format %s: %v", tc.Name, err)
			}
			testsupport.AssertGolden(t, tc.Golden, got)
		})
	}
}
