package moodle

// Documents the restore routine requires even when a course carries no
// users, scales, outcomes, groups, files or grades.
const (
	rolesXML = `<?xml version="1.0" encoding="UTF-8"?>
<roles>
  <role_overrides></role_overrides>
  <role_assignments></role_assignments>
</roles>
`
	scalesXML = `<?xml version="1.0" encoding="UTF-8"?>
<scales/>
`
	outcomesXML = `<?xml version="1.0" encoding="UTF-8"?>
<outcomes_definition/>
`
	groupsXML = `<?xml version="1.0" encoding="UTF-8"?>
<groups/>
`
	filesXML = `<?xml version="1.0" encoding="UTF-8"?>
<files>
</files>
`
	completionXML = `<?xml version="1.0" encoding="UTF-8"?>
<course_completion><empty/></course_completion>
`
	gradeHistoryXML = `<?xml version="1.0" encoding="UTF-8"?>
<grade_history><grade_grades/></grade_history>
`
	gradebookXML = `<?xml version="1.0" encoding="UTF-8"?>
<gradebook>
  <attributes>
    <grade_items></grade_items>
    <grade_letters></grade_letters>
    <grade_settings></grade_settings>
  </attributes>
</gradebook>
`
)
