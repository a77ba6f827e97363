package moodle

import (
	"github.com/saulo-duarte/examen-backup/internal/course"
	util "github.com/saulo-duarte/examen-backup/internal/utils"
)

const (
	PathManifest     = "moodle_backup.xml"
	PathCourse       = "course/course.xml"
	PathQuestions    = "questions.xml"
	PathRoles        = "roles.xml"
	PathScales       = "scales.xml"
	PathOutcomes     = "outcomes.xml"
	PathGroups       = "groups.xml"
	PathFiles        = "files.xml"
	PathCompletion   = "completion.xml"
	PathGradeHistory = "grade_history.xml"
	PathGradebook    = "gradebook.xml"
)

// Document is one rendered archive entry.
type Document struct {
	Path string
	Body []byte
}

type renderFunc func(d *course.Data, ts util.Epoch) ([]byte, error)

type entry struct {
	path   string
	render renderFunc
}

func static(body string) renderFunc {
	return func(*course.Data, util.Epoch) ([]byte, error) {
		return []byte(body), nil
	}
}

// manifest fixes the entry set and its order inside the archive.
var manifest = []entry{
	{PathManifest, func(d *course.Data, ts util.Epoch) ([]byte, error) {
		return renderSkeleton(PathManifest, manifestSkeleton, manifestValues(d, ts))
	}},
	{PathCourse, func(d *course.Data, ts util.Epoch) ([]byte, error) {
		return renderSkeleton(PathCourse, courseSkeleton, courseValues(d, ts))
	}},
	{PathQuestions, renderQuestions},
	{PathRoles, static(rolesXML)},
	{PathScales, static(scalesXML)},
	{PathOutcomes, static(outcomesXML)},
	{PathGroups, static(groupsXML)},
	{PathFiles, static(filesXML)},
	{PathCompletion, static(completionXML)},
	{PathGradeHistory, static(gradeHistoryXML)},
	{PathGradebook, static(gradebookXML)},
}

// EntryPaths lists every archive entry in write order.
func EntryPaths() []string {
	paths := make([]string, len(manifest))
	for i, e := range manifest {
		paths[i] = e.path
	}
	return paths
}

// Render produces every backup document for one generation epoch.
func Render(d *course.Data, ts util.Epoch) ([]Document, error) {
	docs := make([]Document, 0, len(manifest))
	for _, e := range manifest {
		body, err := e.render(d, ts)
		if err != nil {
			return nil, err
		}
		docs = append(docs, Document{Path: e.path, Body: body})
	}
	return docs, nil
}
