/*
Package types defines core data structures used throughout curlfmt.

# Overview

All values are transient. They are built for a single formatting call
and dropped once the report text has been handed back.

# Request Types

ParsedRequest:
  - URL, method and raw payload taken from a cURL command
  - Method is never empty, it defaults to GET

ExecutionResult:
  - Body written by the external tool
  - Status code captured from the appended marker, 0 when unknown

# Report Types

Report:
  - Request summary plus the pretty-printed payload and response
  - Text() renders the human readable form
  - JSON and YAML tags back the machine readable output formats

HistoryEntry:
  - A report persisted in the history database with its raw command

# Front-end Types

Item:
  - One row rendered by a launcher front-end
  - Action tells the front-end to copy Text or just close
*/
package types
