// Package naming provides the host-side naming conventions for managed
// volume channels: channel names and local mount paths.
//
// Every command kind printed for a channel (fstab entry, mkdir, mount,
// RMAN allocate) derives its path from ChannelMountPath so they always
// agree.
package naming

import (
	"fmt"
	"strings"
)

// ChannelName returns the name of the channel at index.
// Format: ch{index} (e.g., "ch0")
func ChannelName(index int) string {
	return fmt.Sprintf("ch%d", index)
}

// ChannelMountPath returns the local mount point for a channel.
// Format: {mountRoot}/{volumeName}-ch{index}
//
// Trailing slashes on mountRoot are ignored.
//
// Example: ("/mnt/rubrik", "oradb1", 0) → /mnt/rubrik/oradb1-ch0
func ChannelMountPath(mountRoot, volumeName string, index int) string {
	return fmt.Sprintf("%s/%s-%s", strings.TrimRight(mountRoot, "/"), volumeName, ChannelName(index))
}

// ChannelExport returns the NFS source of a channel as used in /etc/fstab.
// Format: {ip}:{mountPoint}
func ChannelExport(ip, mountPoint string) string {
	return ip + ":" + mountPoint
}
