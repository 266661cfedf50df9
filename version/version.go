package version

import "fmt"

// Populated via -ldflags at build time.
var (
	Version   = "unknown"
	Revision  = "unknown"
	BuildTime = "unknown"
)

// String renders the full version report.
func String() string {
	return fmt.Sprintf("Version:    %s\nGit hash:   %s\nBuilt:      %s\n", Version, Revision, BuildTime)
}

// License is the embedded license text, printed by "corral license" and by
// the "copyright" reserved target.
const License = `Corral - VirtualBox fleet control

Copyright (c) the Corral authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this software except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
`

// About is a short description shown by the "program" reserved target.
const About = `Corral - VirtualBox fleet control

Corral resolves a set of virtual machines by name fragment, wildcard,
running-state or file list, and dispatches a lifecycle command to each
match through the VBoxManage command line interface.
`
