package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/jbweber/mvctl/internal/cdm"
	"github.com/jbweber/mvctl/internal/naming"
)

// NotExportedMessage is the whole runbook for a volume that is not exported.
const NotExportedMessage = "The managed volume has not been exported yet"

var separator = strings.Repeat("-", 50)

// RunbookOptions holds the host-side settings used to render a runbook.
type RunbookOptions struct {
	// MountRoot is the local directory holding channel mount points.
	MountRoot string
	// MountOptions is the NFS options field of each fstab entry.
	MountOptions string
	// Host is the cluster address used in the curl templates.
	Host string
	// Auth selects the Authorization header of the curl templates.
	Auth cdm.Auth
}

// WriteSummary writes the one-line state summary of vol.
func WriteSummary(w io.Writer, vol *cdm.ManagedVolume) error {
	_, err := fmt.Fprintf(w, "The current state of the %s managed volume is %s and the managed volume is %s\n",
		vol.Name, vol.State, writeMode(vol))
	return err
}

// WriteRunbook writes the copy-pasteable setup instructions for vol: fstab
// entries, mkdir and mount commands, RMAN channel directives, and the
// begin/end snapshot curl templates. Every channel section lists channels
// in descriptor order with indexes starting at 0.
//
// If vol is not exported only NotExportedMessage is written.
func WriteRunbook(w io.Writer, vol *cdm.ManagedVolume, opts RunbookOptions) error {
	if !vol.IsExported() {
		_, err := fmt.Fprintln(w, NotExportedMessage)
		return err
	}

	var b strings.Builder
	channels := vol.Channels()
	mountPath := func(i int) string {
		return naming.ChannelMountPath(opts.MountRoot, vol.Name, i)
	}

	b.WriteString(separator + "\n")
	b.WriteString(vol.ID + "\n")
	b.WriteString(separator + "\n")

	b.WriteString("# Add these lines to /etc/fstab on linux hosts\n")
	for i, ch := range channels {
		fmt.Fprintf(&b, "%s  %s  nfs %s 0 0\n",
			naming.ChannelExport(ch.IPAddress, ch.MountPoint), mountPath(i), opts.MountOptions)
	}
	b.WriteString(separator + "\n")

	fmt.Fprintf(&b, "# Make the mount points (run as root user) and give permissions to Oracle user chown -R oracle:oinstall %s/*\n",
		strings.TrimRight(opts.MountRoot, "/"))
	for i := range channels {
		fmt.Fprintf(&b, "mkdir -p %s\n", mountPath(i))
	}
	b.WriteString(separator + "\n")

	b.WriteString("# Mount the NFS exports.\n")
	for i := range channels {
		fmt.Fprintf(&b, "mount %s\n", mountPath(i))
	}
	b.WriteString(separator + "\n")

	b.WriteString("# RMAN channels to use in backup scripts:\n")
	for i := range channels {
		fmt.Fprintf(&b, "allocate channel %s device type disk format '%s/%%U';\n",
			naming.ChannelName(i), mountPath(i))
	}
	b.WriteString(separator + "\n")

	writeSnapshotCommands(&b, vol.ID, opts)

	_, err := io.WriteString(w, b.String())
	return err
}

// writeSnapshotCommands writes the begin/end snapshot curl templates.
func writeSnapshotCommands(b *strings.Builder, id string, opts RunbookOptions) {
	if basic, ok := opts.Auth.(cdm.BasicAuth); ok {
		fmt.Fprintf(b, "# Rubrik user in snapshot command: %s\n", basic.Username)
	}

	b.WriteString("# The begin snapshot ReST API command is:\n")
	b.WriteString(SnapshotCommand(opts.Host, id, "begin", opts.Auth) + "\n")
	b.WriteString("# The end snapshot ReST API command is:\n")
	b.WriteString(SnapshotCommand(opts.Host, id, "end", opts.Auth) + "\n")
}

// SnapshotCommand returns the curl command for the begin or end snapshot
// endpoint of volume id.
func SnapshotCommand(host, id, action string, auth cdm.Auth) string {
	return fmt.Sprintf("curl -k -X POST -H 'Authorization: %s' 'https://%s/api/internal%s'",
		cdm.AuthorizationHeader(auth), host, cdm.SnapshotPath(id, action))
}
