package moodle

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/saulo-duarte/examen-backup/internal/course"
	util "github.com/saulo-duarte/examen-backup/internal/utils"
)

var ErrRender = errors.New("render document")

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

var funcs = template.FuncMap{
	"xml": xmlEscaper.Replace,
}

// renderSkeleton executes a fixed skeleton against a substitution map.
// A key referenced by the skeleton but absent from values is an error.
func renderSkeleton(name, skeleton string, values map[string]any) ([]byte, error) {
	tmpl, err := template.New(name).Funcs(funcs).Option("missingkey=error").Parse(skeleton)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrRender, name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, values); err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrRender, name, err)
	}
	return buf.Bytes(), nil
}

// BackupFilename is the name Moodle itself would give the archive.
func BackupFilename(d *course.Data, ts util.Epoch) string {
	return fmt.Sprintf("backup-moodle2-course-%d-%s-%s.mbz", d.Course.ID, slug(d.Course.ShortName), ts)
}

// slug lowercases a shortname and drops its numeric suffix: EXAMEN101 -> examen.
func slug(shortname string) string {
	return strings.ToLower(strings.TrimRight(shortname, "0123456789"))
}

func manifestValues(d *course.Data, ts util.Epoch) map[string]any {
	return map[string]any{
		"Filename":         BackupFilename(d, ts),
		"Timestamp":        ts.String(),
		"Version":          d.Site.Version,
		"Release":          d.Site.Release,
		"WWWRoot":          d.Site.WWWRoot,
		"SiteHash":         d.Site.IdentifierHash,
		"SystemContextID":  d.Site.SystemContextID,
		"CourseID":         d.Course.ID,
		"CourseContextID":  d.Course.ContextID,
		"CourseFormat":     d.Course.Format,
		"CourseFullName":   d.Course.FullName,
		"CourseShortName":  d.Course.ShortName,
		"IncludeQuestions": 1,
	}
}

func courseValues(d *course.Data, ts util.Epoch) map[string]any {
	return map[string]any{
		"CourseID":          d.Course.ID,
		"CourseContextID":   d.Course.ContextID,
		"ShortName":         d.Course.ShortName,
		"FullName":          d.Course.FullName,
		"Summary":           d.Course.Summary,
		"Format":            d.Course.Format,
		"NumSections":       d.Course.NumSections,
		"Timestamp":         ts.String(),
		"CategoryID":        d.Course.Category.ID,
		"CategoryContextID": d.Course.Category.ContextID,
		"CategoryName":      d.Course.Category.Name,
	}
}

const manifestSkeleton = `<?xml version="1.0" encoding="UTF-8"?>
<moodle_backup>
  <information>
    <name>{{xml .Filename}}</name>
    <moodle_version>{{.Version}}</moodle_version>
    <moodle_release>{{xml .Release}}</moodle_release>
    <backup_version>{{.Version}}</backup_version>
    <backup_release>{{xml .Release}}</backup_release>
    <backup_date>{{.Timestamp}}</backup_date>
    <mnet_remoteusers>0</mnet_remoteusers>
    <include_files>1</include_files>
    <include_file_references_to_external_content>0</include_file_references_to_external_content>
    <original_wwwroot>{{xml .WWWRoot}}</original_wwwroot>
    <original_site_identifier_hash>{{xml .SiteHash}}</original_site_identifier_hash>
    <original_course_id>{{.CourseID}}</original_course_id>
    <original_course_format>{{xml .CourseFormat}}</original_course_format>
    <original_course_fullname>{{xml .CourseFullName}}</original_course_fullname>
    <original_course_shortname>{{xml .CourseShortName}}</original_course_shortname>
    <original_course_startdate>{{.Timestamp}}</original_course_startdate>
    <original_course_contextid>{{.CourseContextID}}</original_course_contextid>
    <original_system_contextid>{{.SystemContextID}}</original_system_contextid>
    <type>course</type>
    <format>moodle2</format>
    <interactive>1</interactive>
    <mode>10</mode>
    <execution>1</execution>
    <executiontime>0</executiontime>
  </information>
  <details>
    <detail backup_id="1" type="course" format="moodle2" interactive="1" mode="10" execution="1" executiontime="0">
      <settings>
        <setting level="root" name="filename" value="{{xml .Filename}}"/>
        <setting level="root" name="users" value="0"/>
        <setting level="root" name="role_assignments" value="0"/>
        <setting level="root" name="activities" value="1"/>
        <setting level="root" name="blocks" value="0"/>
        <setting level="root" name="files" value="1"/>
        <setting level="root" name="filters" value="0"/>
        <setting level="root" name="comments" value="0"/>
        <setting level="root" name="badges" value="0"/>
        <setting level="root" name="calendarevents" value="0"/>
        <setting level="root" name="userscompletion" value="0"/>
        <setting level="root" name="logs" value="0"/>
        <setting level="root" name="grade_histories" value="0"/>
        <setting level="root" name="questionbank" value="{{.IncludeQuestions}}"/>
        <setting level="root" name="groups" value="0"/>
      </settings>
    </detail>
  </details>
</moodle_backup>
`

const courseSkeleton = `<?xml version="1.0" encoding="UTF-8"?>
<course id="{{.CourseID}}" contextid="{{.CourseContextID}}">
  <shortname>{{xml .ShortName}}</shortname>
  <fullname>{{xml .FullName}}</fullname>
  <idnumber></idnumber>
  <summary>{{xml .Summary}}</summary>
  <summaryformat>1</summaryformat>
  <format>{{xml .Format}}</format>
  <showgrades>1</showgrades>
  <newsitems>5</newsitems>
  <startdate>{{.Timestamp}}</startdate>
  <enddate>0</enddate>
  <numsections>{{.NumSections}}</numsections>
  <marker>0</marker>
  <maxbytes>0</maxbytes>
  <legacyfiles>0</legacyfiles>
  <showreports>0</showreports>
  <visible>1</visible>
  <groupmode>0</groupmode>
  <groupmodeforce>0</groupmodeforce>
  <defaultgroupingid>0</defaultgroupingid>
  <lang></lang>
  <theme></theme>
  <timecreated>{{.Timestamp}}</timecreated>
  <timemodified>{{.Timestamp}}</timemodified>
  <requested>0</requested>
  <enablecompletion>1</enablecompletion>
  <completionnotify>0</completionnotify>
  <category id="{{.CategoryID}}" contextid="{{.CategoryContextID}}">
    <name>{{xml .CategoryName}}</name>
    <description>$@NULL@$</description>
  </category>
  <tags></tags>
</course>
`
