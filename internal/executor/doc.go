/*
Package executor runs cURL command lines as child processes.

# Overview

curlfmt never speaks HTTP itself. The command text is handed to a shell
and curl does the transfer. The executor only has to recover two things
from a single stdout stream: the response body and the status code.

# Status Capture

The command is extended with

	-s -w '===STATUS_CODE===%{http_code}'

so curl stays silent and writes the marker followed by the status code
after the body. SplitOutput cuts the output at the LAST marker. This is an
approximation, not a protocol: a body that ends with marker-like text can
still confuse it, in which case the status degrades to 0.

# Failure Handling

  - Shell cannot be started: empty body, status 0
  - curl exits non-zero: whatever it wrote is still split and returned
  - Marker missing: whole output is the body, status 0
  - Marker followed by garbage: body before the marker, status 0

# Example Usage

	exec := executor.NewShellExecutor("sh", logger)
	result := exec.Execute(ctx, "curl 'https://api.example.com/users'")

	fmt.Println(result.StatusCode)
	fmt.Println(result.Body)

# Trust Boundary

The command is interpreted by the shell verbatim. Callers must only pass
text the user intends to run as a shell command.
*/
package executor
