package tools

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"
)

// NewSystemInfoTool creates the system report tool. Every section is
// best-effort; anything unavailable degrades to an "Unable to retrieve" line.
func NewSystemInfoTool() *Tool {
	return &Tool{
		Name:        "system_info",
		Description: "Report current time, OS, CPU, memory and disk details",
		Parameters: map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{},
			"required":   []string{},
		},
		Keywords: []string{"system", "time", "date", "status", "memory", "disk"},
		Execute: func(args map[string]interface{}) (map[string]interface{}, error) {
			report := SystemReport()
			return map[string]interface{}{
				"operation": "system_info",
				"report":    report,
			}, nil
		},
	}
}

// SystemReport builds the multi-line system summary shown to the user
func SystemReport() string {
	var sb strings.Builder

	now := time.Now()
	fmt.Fprintf(&sb, "Current Time: %s\n", now.Format("03:04:05 PM"))
	fmt.Fprintf(&sb, "Current Date: %s\n", now.Format("Monday, January 02, 2006"))
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "Operating System: %s\n", osName())
	fmt.Fprintf(&sb, "Architecture: %s\n", runtime.GOARCH)
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "CPU Cores: %d\n", runtime.NumCPU())

	if lines := memoryLines(); len(lines) > 0 {
		for _, line := range lines {
			sb.WriteString(line + "\n")
		}
	} else {
		sb.WriteString("Memory Info: Unable to retrieve\n")
	}

	if lines := diskLines(); len(lines) > 0 {
		for _, line := range lines {
			sb.WriteString(line + "\n")
		}
	} else {
		sb.WriteString("Disk Info: Unable to retrieve\n")
	}

	sb.WriteString("\n")
	for _, line := range platformLines() {
		sb.WriteString(line + "\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}

func osName() string {
	switch runtime.GOOS {
	case "darwin":
		return "Darwin"
	case "linux":
		return "Linux"
	case "windows":
		return "Windows"
	default:
		return runtime.GOOS
	}
}

// memoryLines reads /proc/meminfo; other platforms report no memory section
func memoryLines() []string {
	data, err := os.ReadFile("/proc/meminfo")
	if err != nil {
		return nil
	}

	fields := map[string]float64{}
	for _, line := range strings.Split(string(data), "\n") {
		parts := strings.Fields(line)
		if len(parts) < 2 {
			continue
		}
		key := strings.TrimSuffix(parts[0], ":")
		kb, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			continue
		}
		fields[key] = kb
	}

	total, ok := fields["MemTotal"]
	if !ok || total == 0 {
		return nil
	}
	available := fields["MemAvailable"]
	used := total - available

	toGB := func(kb float64) float64 { return kb / (1024 * 1024) }
	return []string{
		fmt.Sprintf("Total RAM: %.1f GB", toGB(total)),
		fmt.Sprintf("Used RAM: %.1f GB", toGB(used)),
		fmt.Sprintf("Available RAM: %.1f GB", toGB(available)),
		fmt.Sprintf("Memory Usage: %.1f%%", used/total*100),
	}
}

// diskLines shells out to df, which covers linux and darwin
func diskLines() []string {
	out, err := exec.Command("df", "-k", "/").Output()
	if err != nil {
		return nil
	}

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) < 2 {
		return nil
	}
	parts := strings.Fields(lines[len(lines)-1])
	if len(parts) < 4 {
		return nil
	}

	total, err1 := strconv.ParseFloat(parts[1], 64)
	used, err2 := strconv.ParseFloat(parts[2], 64)
	free, err3 := strconv.ParseFloat(parts[3], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return nil
	}

	toGB := func(kb float64) float64 { return kb / (1024 * 1024) }
	return []string{
		fmt.Sprintf("Total Disk Space: %.1f GB", toGB(total)),
		fmt.Sprintf("Used Disk Space: %.1f GB", toGB(used)),
		fmt.Sprintf("Free Disk Space: %.1f GB", toGB(free)),
	}
}

// platformLines adds OS-specific version details, best-effort
func platformLines() []string {
	var info []string

	switch runtime.GOOS {
	case "darwin":
		out, err := exec.Command("sw_vers").Output()
		if err != nil {
			break
		}
		for _, line := range strings.Split(string(out), "\n") {
			switch {
			case strings.Contains(line, "ProductName:"):
				info = append(info, "macOS Version: "+valueAfterColon(line))
			case strings.Contains(line, "ProductVersion:"):
				info = append(info, "macOS Build: "+valueAfterColon(line))
			case strings.Contains(line, "BuildVersion:"):
				info = append(info, "Build: "+valueAfterColon(line))
			}
		}
	case "linux":
		if data, err := os.ReadFile("/etc/os-release"); err == nil {
			for _, line := range strings.Split(string(data), "\n") {
				if strings.HasPrefix(line, "PRETTY_NAME=") {
					distro := strings.Trim(strings.TrimPrefix(line, "PRETTY_NAME="), "\"")
					info = append(info, "Linux Distribution: "+distro)
				} else if strings.HasPrefix(line, "VERSION=") {
					version := strings.Trim(strings.TrimPrefix(line, "VERSION="), "\"")
					info = append(info, "Version: "+version)
				}
			}
		}
		if out, err := exec.Command("uname", "-r").Output(); err == nil {
			info = append(info, "Kernel: "+strings.TrimSpace(string(out)))
		}
	case "windows":
		if out, err := exec.Command("cmd", "/c", "ver").Output(); err == nil {
			info = append(info, "Windows Version: "+strings.TrimSpace(string(out)))
		}
	}

	return info
}

func valueAfterColon(line string) string {
	_, after, found := strings.Cut(line, ":")
	if !found {
		return ""
	}
	return strings.TrimSpace(after)
}
