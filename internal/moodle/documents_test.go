package moodle_test

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/saulo-duarte/examen-backup/internal/course"
	"github.com/saulo-duarte/examen-backup/internal/moodle"
	util "github.com/saulo-duarte/examen-backup/internal/utils"
)

var testEpoch = util.EpochFromUnix(1767323045)

func render(t *testing.T, ts util.Epoch) map[string][]byte {
	t.Helper()
	d, err := course.Examen()
	if err != nil {
		t.Fatalf("load course: %v", err)
	}
	docs, err := moodle.Render(d, ts)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	out := make(map[string][]byte, len(docs))
	for _, doc := range docs {
		out[doc.Path] = doc.Body
	}
	return out
}

func TestEntryPaths(t *testing.T) {
	want := []string{
		"moodle_backup.xml",
		"course/course.xml",
		"questions.xml",
		"roles.xml",
		"scales.xml",
		"outcomes.xml",
		"groups.xml",
		"files.xml",
		"completion.xml",
		"grade_history.xml",
		"gradebook.xml",
	}
	if got := moodle.EntryPaths(); !reflect.DeepEqual(got, want) {
		t.Errorf("unexpected entry paths:\n got %v\nwant %v", got, want)
	}
}

func TestRenderAllWellFormed(t *testing.T) {
	docs := render(t, testEpoch)
	if len(docs) != len(moodle.EntryPaths()) {
		t.Fatalf("expected %d documents, got %d", len(moodle.EntryPaths()), len(docs))
	}

	for path, body := range docs {
		t.Run(path, func(t *testing.T) {
			if !bytes.HasPrefix(body, []byte(`<?xml version="1.0" encoding="UTF-8"?>`)) {
				t.Errorf("missing XML declaration")
			}
			dec := xml.NewDecoder(bytes.NewReader(body))
			for {
				_, err := dec.Token()
				if err != nil {
					if !errors.Is(err, io.EOF) {
						t.Errorf("not well-formed: %v", err)
					}
					break
				}
			}
		})
	}
}

type manifestDoc struct {
	Information struct {
		Name          string `xml:"name"`
		Release       string `xml:"moodle_release"`
		BackupDate    string `xml:"backup_date"`
		StartDate     string `xml:"original_course_startdate"`
		Format        string `xml:"format"`
		CourseID      int    `xml:"original_course_id"`
		CourseContext int    `xml:"original_course_contextid"`
	} `xml:"information"`
}

type courseDoc struct {
	ID           int    `xml:"id,attr"`
	ContextID    int    `xml:"contextid,attr"`
	ShortName    string `xml:"shortname"`
	Summary      string `xml:"summary"`
	StartDate    string `xml:"startdate"`
	TimeCreated  string `xml:"timecreated"`
	TimeModified string `xml:"timemodified"`
	NumSections  int    `xml:"numsections"`
}

func TestManifestAndCourseShareEpoch(t *testing.T) {
	docs := render(t, testEpoch)

	var m manifestDoc
	if err := xml.Unmarshal(docs[moodle.PathManifest], &m); err != nil {
		t.Fatalf("decode manifest: %v", err)
	}
	var c courseDoc
	if err := xml.Unmarshal(docs[moodle.PathCourse], &c); err != nil {
		t.Fatalf("decode course: %v", err)
	}

	ts := testEpoch.String()
	for name, got := range map[string]string{
		"backup_date":               m.Information.BackupDate,
		"original_course_startdate": m.Information.StartDate,
		"startdate":                 c.StartDate,
		"timecreated":               c.TimeCreated,
		"timemodified":              c.TimeModified,
	} {
		if got != ts {
			t.Errorf("%s = %q, want %q", name, got, ts)
		}
	}

	if m.Information.Release != "4.5" {
		t.Errorf("unexpected release %q", m.Information.Release)
	}
	if m.Information.Format != "moodle2" {
		t.Errorf("unexpected format %q", m.Information.Format)
	}
	if m.Information.Name != "backup-moodle2-course-2-examen-"+ts+".mbz" {
		t.Errorf("unexpected backup name %q", m.Information.Name)
	}
	if m.Information.CourseID != c.ID || m.Information.CourseContext != c.ContextID {
		t.Errorf("manifest course ids (%d, %d) do not match course.xml (%d, %d)",
			m.Information.CourseID, m.Information.CourseContext, c.ID, c.ContextID)
	}
	if c.NumSections != 6 {
		t.Errorf("expected 6 sections, got %d", c.NumSections)
	}
	if !strings.HasPrefix(c.Summary, "<p>Discover") {
		t.Errorf("summary should decode back to HTML, got %.30q", c.Summary)
	}
}

func TestQuestionsDocument(t *testing.T) {
	docs := render(t, testEpoch)

	if n := bytes.Count(docs[moodle.PathQuestions], []byte("<question ")); n != 5 {
		t.Errorf("expected 5 <question> elements, got %d", n)
	}

	qc, err := moodle.ParseQuestionCategories(docs[moodle.PathQuestions])
	if err != nil {
		t.Fatalf("ParseQuestionCategories failed: %v", err)
	}
	if len(qc.Categories) != 1 {
		t.Fatalf("expected 1 category, got %d", len(qc.Categories))
	}
	cat := qc.Categories[0]
	if cat.Stamp != "examen_2026_v1" || cat.ContextID != 123 {
		t.Errorf("unexpected category header %+v", cat)
	}

	answerIDs := map[int]bool{}
	for i, q := range cat.Questions {
		if q.ID != i+1 {
			t.Errorf("question %d has id %d", i, q.ID)
		}
		if !q.TimeCreated.Equal(testEpoch) || !q.TimeModified.Equal(testEpoch) {
			t.Errorf("question %d not stamped with run epoch", q.ID)
		}

		full := 0
		for _, a := range q.Answers() {
			if answerIDs[a.ID] {
				t.Errorf("answer id %d repeated", a.ID)
			}
			answerIDs[a.ID] = true
			if a.Fraction == 100 {
				full++
			}
		}

		switch q.Type {
		case "shortanswer":
			if full < 1 {
				t.Errorf("shortanswer question %d accepts nothing", q.ID)
			}
		default:
			if full != 1 {
				t.Errorf("question %d (%s) has %d fully correct answers", q.ID, q.Type, full)
			}
		}
	}

	if cat.Questions[0].Multichoice == nil || cat.Questions[1].TrueFalse == nil || cat.Questions[3].ShortAnswer == nil {
		t.Error("type plugins not rendered for the matching question types")
	}
}

func TestRenderDeterministic(t *testing.T) {
	a := render(t, testEpoch)
	b := render(t, testEpoch)
	for path := range a {
		if !bytes.Equal(a[path], b[path]) {
			t.Errorf("%s differs between identical renders", path)
		}
	}

	later := util.EpochFromUnix(testEpoch.Unix() + 3600)
	c := render(t, later)
	for path := range a {
		normalized := bytes.ReplaceAll(c[path], []byte(later.String()), []byte(testEpoch.String()))
		if !bytes.Equal(a[path], normalized) {
			t.Errorf("%s differs in more than its timestamps", path)
		}
	}
}
