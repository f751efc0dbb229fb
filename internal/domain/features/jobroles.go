package features

// JobRoles writes whether talent and job share at least one role. Roles
// compare exactly.
func JobRoles(r Record, row Row) error {
	wanted := make(map[string]struct{}, len(r.JobJobRoles))
	for _, role := range r.JobJobRoles {
		wanted[role] = struct{}{}
	}

	match := false
	for _, role := range r.TalentJobRoles {
		if _, ok := wanted[role]; ok {
			match = true
			break
		}
	}
	row[ColJobRolesMatch] = boolFloat(match)
	return nil
}
