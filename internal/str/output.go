//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

// LessonOutputJSON - what the server hands back after running a lesson
type LessonOutputJSON struct {
	Lesson  string  `json:"lesson"`
	Title   string  `json:"title"`
	Blurb   string  `json:"blurb"`
	Output  string  `json:"output"`
	Elapsed float64 `json:"elapsed"`
}

// ErrorJSON - error payload for the server
type ErrorJSON struct {
	Error string `json:"error"`
}
