package feed

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"

	"github.com/quay/cvsscalc/internal/log"
)

const testFeed = `{
  "CVE_data_type": "CVE",
  "CVE_Items": [
    {
      "cve": {
        "CVE_data_meta": {"ID": "CVE-2014-6271"},
        "description": {"description_data": [
          {"lang": "en", "value": "GNU Bash allows remote attackers to execute arbitrary code."}
        ]}
      },
      "impact": {"baseMetricV3": {"cvssV3": {
        "version": "3.1",
        "vectorString": "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H"
      }}}
    },
    {
      "cve": {
        "CVE_data_meta": {"ID": "CVE-1999-0001"},
        "description": {"description_data": [
          {"lang": "en", "value": "** REJECT ** DO NOT USE THIS CANDIDATE NUMBER."}
        ]}
      },
      "impact": {"baseMetricV3": {"cvssV3": {
        "vectorString": "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H"
      }}}
    },
    {
      "cve": {
        "CVE_data_meta": {"ID": "CVE-2000-0002"},
        "description": {"description_data": [
          {"lang": "en", "value": "No impact metrics were ever assigned."}
        ]}
      },
      "impact": {}
    },
    {
      "cve": {
        "CVE_data_meta": {"ID": "CVE-2000-0003"},
        "description": {"description_data": [
          {"lang": "en", "value": "The vector was recorded incorrectly."}
        ]}
      },
      "impact": {"baseMetricV3": {"cvssV3": {
        "vectorString": "CVSS:3.1/AV:N/AC:L"
      }}}
    },
    {
      "cve": {
        "CVE_data_meta": {"ID": "CVE-2016-2118"},
        "description": {"description_data": [
          {"lang": "en", "value": "The MS-SAMR and MS-LSAD protocol implementations in Samba mishandle sessions."}
        ]}
      },
      "impact": {"baseMetricV3": {"cvssV3": {
        "version": "3.1",
        "vectorString": "CVSS:3.1/AV:N/AC:H/PR:N/UI:R/S:U/C:H/I:H/A:H"
      }}}
    }
  ]
}`

func TestLoader(t *testing.T) {
	ctx := log.Testing(t)
	l, err := NewLoader(ctx, strings.NewReader(testFeed))
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]float64{
		"CVE-2014-6271": 9.8,
		"CVE-2016-2118": 7.5,
	}
	got := make(map[string]float64)
	for l.Next() {
		e := l.Entry()
		got[e.ID] = e.Result.BaseScore
	}
	if err := l.Err(); err != nil {
		t.Error(err)
	}
	if len(got) != len(want) {
		t.Errorf("got: %v, want: %v", got, want)
	}
	for id, score := range want {
		if got[id] != score {
			t.Errorf("%s: got: %4.1f, want: %4.1f", id, got[id], score)
		}
	}
	if got, want := l.Skipped(), 3; got != want {
		t.Errorf("skipped: got: %d, want: %d", got, want)
	}
}

func TestLoaderGzip(t *testing.T) {
	ctx := log.Testing(t)
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	io.WriteString(w, testFeed)
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	l, err := NewLoader(ctx, &buf)
	if err != nil {
		t.Fatal(err)
	}
	n := 0
	for l.Next() {
		n++
	}
	if n != 2 {
		t.Errorf("got: %d entries, want: 2", n)
	}
}

func TestLoaderNotAFeed(t *testing.T) {
	ctx := log.Testing(t)
	if _, err := NewLoader(ctx, strings.NewReader(`{"hello":"world"}`)); err == nil {
		t.Error("expected an error")
	}
}
